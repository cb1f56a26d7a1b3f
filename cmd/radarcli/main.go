package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/abiosoft/ishell"
	"github.com/golang/glog"

	"github.com/wavesense/ld2412.go/pkg/radar"
	"github.com/wavesense/ld2412.go/pkg/radar/serialport"
)

var (
	portName = "/dev/ttyUSB0"
	baud     = 115200

	dev *radar.Device
)

func init() {
	if val := os.Getenv("RADAR_PORT"); val != "" {
		portName = val
	}
	flag.StringVar(&portName, "port", portName, "Serial port device.")
	flag.IntVar(&baud, "baud", baud, "Serial baud rate.")
}

func argByte(c *ishell.Context, n int, name string) (byte, bool) {
	if len(c.Args) <= n {
		c.Err(fmt.Errorf("%s required", name))
		return 0, false
	}
	val, err := strconv.ParseUint(c.Args[n], 10, 8)
	if err != nil {
		c.Err(fmt.Errorf("invalid %s: %v", name, err))
		return 0, false
	}
	return byte(val), true
}

func report(c *ishell.Context, err error) {
	if err != nil {
		c.Err(err)
		return
	}
	c.Println("OK")
}

func gateArgs(c *ishell.Context) ([radar.NumGates]byte, bool) {
	var gates [radar.NumGates]byte
	if len(c.Args) != radar.NumGates {
		c.Err(fmt.Errorf("%d gate values required", radar.NumGates))
		return gates, false
	}
	for i := range gates {
		v, ok := argByte(c, i, fmt.Sprintf("gate %d", i+1))
		if !ok {
			return gates, false
		}
		gates[i] = v
	}
	return gates, true
}

var commands = []*ishell.Cmd{
	{
		Name: "version",
		Help: "read firmware version",
		Func: func(c *ishell.Context) {
			ver, err := dev.FirmwareVersion()
			if err != nil {
				c.Err(err)
				return
			}
			c.Printf("type %04X firmware %s\n", ver.Type, ver)
		},
	},
	{
		Name: "params",
		Help: "read output parameters",
		Func: func(c *ishell.Context) {
			p, err := dev.OutputParams()
			if err != nil {
				c.Err(err)
				return
			}
			c.Printf("gates %d..%d, unmanned %ds, polarity %d\n",
				p.MinGate, p.MaxGate, p.UnmannedDuration, p.OutPinPolarity)
		},
	},
	{
		Name: "set-params",
		Help: "MIN_GATE MAX_GATE UNMANNED_S POLARITY",
		Func: func(c *ishell.Context) {
			var p radar.OutputParams
			var ok bool
			if p.MinGate, ok = argByte(c, 0, "MIN_GATE"); !ok {
				return
			}
			if p.MaxGate, ok = argByte(c, 1, "MAX_GATE"); !ok {
				return
			}
			if p.UnmannedDuration, ok = argByte(c, 2, "UNMANNED_S"); !ok {
				return
			}
			if p.OutPinPolarity, ok = argByte(c, 3, "POLARITY"); !ok {
				return
			}
			report(c, dev.SetOutputParams(p))
		},
	},
	{
		Name: "motion",
		Help: "read lowest motion sensitivity",
		Func: func(c *ishell.Context) {
			v, err := dev.MotionSensitivity()
			if err != nil {
				c.Err(err)
				return
			}
			c.Println(v)
		},
	},
	{
		Name: "motion-gates",
		Help: "read per-gate motion sensitivities",
		Func: func(c *ishell.Context) {
			gates, err := dev.MotionGateSensitivity()
			if err != nil {
				c.Err(err)
				return
			}
			c.Printf("%d\n", gates)
		},
	},
	{
		Name: "set-motion",
		Help: "SENSITIVITY(0-100), applied to all gates",
		Func: func(c *ishell.Context) {
			v, ok := argByte(c, 0, "SENSITIVITY")
			if !ok {
				return
			}
			report(c, dev.SetMotionSensitivity(int(v)))
		},
	},
	{
		Name: "set-motion-gates",
		Help: "14 per-gate sensitivities (0-100)",
		Func: func(c *ishell.Context) {
			gates, ok := gateArgs(c)
			if !ok {
				return
			}
			report(c, dev.SetMotionGateSensitivity(gates))
		},
	},
	{
		Name: "static",
		Help: "read lowest static sensitivity",
		Func: func(c *ishell.Context) {
			v, err := dev.StaticSensitivity()
			if err != nil {
				c.Err(err)
				return
			}
			c.Println(v)
		},
	},
	{
		Name: "static-gates",
		Help: "read per-gate static sensitivities",
		Func: func(c *ishell.Context) {
			gates, err := dev.StaticGateSensitivity()
			if err != nil {
				c.Err(err)
				return
			}
			c.Printf("%d\n", gates)
		},
	},
	{
		Name: "set-static",
		Help: "SENSITIVITY(0-100), applied to all gates",
		Func: func(c *ishell.Context) {
			v, ok := argByte(c, 0, "SENSITIVITY")
			if !ok {
				return
			}
			report(c, dev.SetStaticSensitivity(int(v)))
		},
	},
	{
		Name: "set-static-gates",
		Help: "14 per-gate sensitivities (0-100)",
		Func: func(c *ishell.Context) {
			gates, ok := gateArgs(c)
			if !ok {
				return
			}
			report(c, dev.SetStaticGateSensitivity(gates))
		},
	},
	{
		Name: "set-baud",
		Help: "BAUD (9600..460800), effective after restart",
		Func: func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("BAUD required"))
				return
			}
			v, err := strconv.Atoi(c.Args[0])
			if err != nil {
				c.Err(fmt.Errorf("invalid BAUD: %v", err))
				return
			}
			report(c, dev.SetBaudRate(v))
		},
	},
	{
		Name: "calibrate",
		Help: "start dynamic background calibration",
		Func: func(c *ishell.Context) {
			report(c, dev.EnterCalibration())
		},
	},
	{
		Name: "calibration",
		Help: "query calibration progress",
		Func: func(c *ishell.Context) {
			st, err := dev.CalibrationStatus()
			if err != nil {
				c.Err(err)
				return
			}
			c.Println(st)
		},
	},
	{
		Name: "reset",
		Help: "restore factory settings (restart to apply)",
		Func: func(c *ishell.Context) {
			report(c, dev.ResetFactory())
		},
	},
	{
		Name: "restart",
		Help: "restart the module",
		Func: func(c *ishell.Context) {
			report(c, dev.Restart())
		},
	},
	{
		Name: "read",
		Help: "read one telemetry snapshot",
		Func: func(c *ishell.Context) {
			state, err := dev.TargetState()
			if err != nil {
				c.Err(err)
				return
			}
			moveDist, _ := dev.MovingDistanceCM()
			moveEnergy, _ := dev.MovingEnergy()
			staticDist, _ := dev.StaticDistanceCM()
			staticEnergy, _ := dev.StaticEnergy()
			c.Printf("%s moving %dcm/%d static %dcm/%d\n",
				state, moveDist, moveEnergy, staticDist, staticEnergy)
		},
	},
}

func main() {
	flag.Parse()

	port, err := serialport.Open(serialport.Config{Name: portName, Baud: baud})
	if err != nil {
		glog.Exitf("open %s: %v", portName, err)
	}
	defer port.Close()
	dev = radar.New(port)

	shell := ishell.New()
	shell.SetPrompt(fmt.Sprintf("[%s] > ", portName))
	for _, cmd := range commands {
		shell.AddCmd(cmd)
	}
	shell.Run()
}

package main

//go-build: CGO_ENABLED=0

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"

	fx "github.com/wavesense/ld2412.go/pkg/framework"
	"github.com/wavesense/ld2412.go/pkg/radar"
	"github.com/wavesense/ld2412.go/pkg/radar/serialport"
	"github.com/wavesense/ld2412.go/pkg/telemetry/mqtt"
)

var (
	portName = "/dev/ttyUSB0"
	baud     = 115200
	mqttURL  = ""
	interval = time.Second
)

func init() {
	if val := os.Getenv("RADAR_PORT"); val != "" {
		portName = val
	}
	if val := os.Getenv("RADAR_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&portName, "port", portName, "Serial port device.")
	flag.IntVar(&baud, "baud", baud, "Serial baud rate.")
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL, empty to disable publishing.")
	flag.DurationVar(&interval, "interval", interval, "Telemetry poll interval.")
}

type reading struct {
	State            string `json:"state"`
	MovingDistanceCM int    `json:"moving_distance_cm"`
	MovingEnergy     int    `json:"moving_energy"`
	StaticDistanceCM int    `json:"static_distance_cm"`
	StaticEnergy     int    `json:"static_energy"`
}

type monitor struct {
	dev      *radar.Device
	queue    *mqtt.Queue
	interval time.Duration
}

func (m *monitor) Name() string {
	return "radarmon"
}

func (m *monitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.poll()
		}
	}
}

func (m *monitor) poll() {
	state, err := m.dev.TargetState()
	if err != nil {
		glog.Warningf("telemetry: %v", err)
		return
	}
	r := reading{State: state.String()}
	r.MovingDistanceCM, _ = m.dev.MovingDistanceCM()
	r.MovingEnergy, _ = m.dev.MovingEnergy()
	r.StaticDistanceCM, _ = m.dev.StaticDistanceCM()
	r.StaticEnergy, _ = m.dev.StaticEnergy()
	glog.Infof("%s moving %dcm/%d static %dcm/%d",
		r.State, r.MovingDistanceCM, r.MovingEnergy, r.StaticDistanceCM, r.StaticEnergy)
	if m.queue == nil {
		return
	}
	out, err := json.Marshal(&r)
	if err != nil {
		glog.Errorf("marshal reading: %v", err)
		return
	}
	m.queue.Pub("presence", out)
}

func main() {
	flag.Parse()

	port, err := serialport.Open(serialport.Config{Name: portName, Baud: baud})
	if err != nil {
		glog.Exitf("open %s: %v", portName, err)
	}
	defer port.Close()

	dev := radar.New(port)
	if ver, err := dev.FirmwareVersion(); err == nil {
		glog.Infof("firmware %s", ver)
	} else {
		glog.Warningf("firmware version: %v", err)
	}

	mon := &monitor{dev: dev, interval: interval}
	if mqttURL != "" {
		opts, prefix, err := mqtt.ClientOptionsFromURL(mqttURL)
		if err != nil {
			glog.Exitf("mqtt url: %v", err)
		}
		if id, err := machineid.ID(); err == nil {
			opts.SetClientID("radarmon-" + id)
		}
		queue := mqtt.NewQueue(opts, prefix)
		if token := queue.Connect(); token.Wait() && token.Error() != nil {
			glog.Exitf("mqtt connect: %v", token.Error())
		}
		defer queue.Close()
		mon.queue = queue
	}

	if err := fx.NewRunner().HandleSignals().Go(mon).Wait(); err != nil {
		glog.Exit(err)
	}
}

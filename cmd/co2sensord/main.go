package main

//go-build: CGO_ENABLED=0

import (
	"flag"

	"github.com/golang/glog"

	"github.com/robotalks/airsense/pkg/co2"
	env "github.com/robotalks/airsense/pkg/env/device"
	fx "github.com/robotalks/airsense/pkg/framework"
	"github.com/robotalks/airsense/pkg/notify"
)

func init() {
	env.SetDeviceType("co2", notify.DeviceMeta{Description: "MG811 CO2 sensor"})
	env.SetupFlags()
	co2.SetupFlags()
}

func main() {
	flag.Parse()
	defer glog.Flush()

	e := env.NewConfig().MustNewEnv()
	sensor := co2.NewConfig().MustNewSensor()
	fx.NewLoop().
		Add(e, sensor, e.NewNotifier(sensor, sensor.Record().NotifyInterval())).
		RunOrFail()
}

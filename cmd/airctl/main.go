package main

//go-build: CGO_ENABLED=0

import (
	"github.com/golang/glog"

	"github.com/robotalks/airsense/pkg/cli/sh"
	env "github.com/robotalks/airsense/pkg/env/consumer"
)

func init() {
	env.SetupFlags()
}

func main() {
	defer glog.Flush()
	sh.Main()
}

package main

//go-build: CGO_ENABLED=0

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/golang/glog"

	env "github.com/robotalks/airsense/pkg/env/consumer"
	fx "github.com/robotalks/airsense/pkg/framework"
	"github.com/robotalks/airsense/pkg/msgs"
	"github.com/robotalks/airsense/pkg/notify/mqtt"
)

var outputJSON bool

func init() {
	env.SetupFlags()
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print messages in JSON.")
}

// topicFilter narrows down to the configured device type and ID.
func topicFilter(conf *env.Config) string {
	switch {
	case conf.Ref.IsValid():
		return conf.Ref.Name() + "/#"
	case conf.Ref.Type != "":
		return conf.Ref.Type + "/#"
	}
	return "#"
}

func printMsg(topic string, payload []byte) {
	stamp := time.Now().Format("15:04:05.000000")
	if strings.HasSuffix(topic, "/"+mqtt.MetaTopic) {
		if len(payload) == 0 {
			fmt.Printf("%s %s: offline\n", stamp, topic)
		} else {
			fmt.Printf("%s %s: %s\n", stamp, topic, payload)
		}
		return
	}
	msg, typed, err := msgs.DecodeMessage(payload)
	if err != nil {
		if typed != nil {
			glog.Warningf("%s: decode error: (type_id=%x) %v", topic, typed.TypeID, err)
		} else {
			glog.Warningf("%s: bad message: %v", topic, err)
		}
		return
	}
	out, err := msgs.Format(msg, outputJSON)
	if err != nil {
		glog.Warningf("%s: %v", topic, err)
		return
	}
	fmt.Printf("%s %s: %s\n", stamp, topic, out)
}

func main() {
	flag.Parse()
	defer glog.Flush()

	conf := env.NewConfig()
	q, err := mqtt.NewQueueFromURL(conf.BrokerURL)
	if err != nil {
		glog.Exit(err)
	}
	q.Sub(topicFilter(conf), printMsg)
	err = fx.RunAll(fx.RunFunc(func(ctx context.Context) error {
		if token := q.Connect(); token.Wait() && token.Error() != nil {
			return token.Error()
		}
		<-ctx.Done()
		return q.Close()
	}))
	if err != nil {
		glog.Exit(err)
	}
}

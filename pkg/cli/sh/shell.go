// Package sh provides the interactive shell to operate sensor devices.
package sh

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"sync/atomic"

	"github.com/abiosoft/ishell"

	env "github.com/robotalks/airsense/pkg/env/consumer"
	fx "github.com/robotalks/airsense/pkg/framework"
	"github.com/robotalks/airsense/pkg/msgs"
	"github.com/robotalks/airsense/pkg/notify"
)

// Shell operates one device at a time over an ishell.
type Shell struct {
	Interactive bool
	OutputJSON  bool
	AutoConnect bool

	Shell   *ishell.Shell
	Config  *env.Config
	Session *Session

	watching int32
}

// ErrNotConnected is reported by commands requiring a device.
var ErrNotConnected = errors.New("not connected")

const (
	shellKey          = "$shell"
	unconnectedPrompt = "[none] > "
)

var (
	evalOnly   bool
	outputJSON bool

	commands = []*ishell.Cmd{
		&DiscoverCmd,
		&ConnectCmd,
		&DisconnectCmd,
		&StatusCmd,
		&SwitchCmd,
		&CalibrateCmd,
		&WatchCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
}

// AddCmds registers more commands, used in init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New(conf *env.Config) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,
		Shell:       ishell.New(),
		Config:      conf,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(unconnectedPrompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// MustBeConnected wraps a command func which needs a Session.
func MustBeConnected(fn func(c *ishell.Context)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		if ShellFrom(c).Session == nil {
			c.Err(ErrNotConnected)
			return
		}
		fn(c)
	}
}

// FormatInfo formats DeviceInfo for display.
func FormatInfo(info notify.DeviceInfo) string {
	if desc := info.Meta.Description; desc != "" {
		return info.Ref.Name() + ": " + desc
	}
	return info.Ref.Name()
}

// DoCommand sends a command to the connected device and prints the reply.
func DoCommand(c *ishell.Context, cmd fx.Message) error {
	s := ShellFrom(c)
	err := s.exec(cmd, c.Println)
	if err != nil {
		c.Err(err)
	}
	return err
}

func (s *Shell) exec(cmd fx.Message, printFn func(...interface{})) error {
	if s.Session == nil {
		return ErrNotConnected
	}
	res := s.Session.Exec(cmd)
	if res.Err != nil {
		return res.Err
	}
	out, err := msgs.Format(res.Msg, s.OutputJSON)
	if err != nil {
		return err
	}
	printFn(out)
	return nil
}

// WithAutoConnect sets AutoConnect.
func (s *Shell) WithAutoConnect(en bool) *Shell {
	s.AutoConnect = en
	return s
}

// Watch turns printing of received events on or off.
func (s *Shell) Watch(on bool) {
	var v int32
	if on {
		v = 1
	}
	atomic.StoreInt32(&s.watching, v)
}

// Watching tells if received events are printed.
func (s *Shell) Watching() bool {
	return atomic.LoadInt32(&s.watching) != 0
}

// DiscoverDevices lists online devices, of typ if not empty.
func (s *Shell) DiscoverDevices(typ string) ([]notify.DeviceInfo, error) {
	connector, err := s.Config.NewConnector()
	if err != nil {
		return nil, err
	}
	found, err := connector.Discover(context.Background())
	if err != nil || typ == "" {
		return found, err
	}
	matched := found[:0]
	for _, info := range found {
		if info.Ref.Type == typ {
			matched = append(matched, info)
		}
	}
	return matched, nil
}

// SelectDevice discovers devices of typ and asks for a choice when more
// than one is found.
func (s *Shell) SelectDevice(typ string) (ref notify.DeviceRef, err error) {
	found, err := s.DiscoverDevices(typ)
	switch {
	case err != nil:
		return
	case len(found) == 0:
		err = fmt.Errorf("no device discovered")
		return
	case len(found) == 1:
		return found[0].Ref, nil
	case !s.Interactive:
		err = fmt.Errorf("%d devices discovered in non-interactive mode", len(found))
		return
	}
	choices := make([]string, len(found))
	for n, info := range found {
		choices[n] = FormatInfo(info)
	}
	index := s.Shell.MultiChoice(choices, "Which one to connect?")
	if index < 0 {
		err = fmt.Errorf("no device selected")
		return
	}
	return found[index].Ref, nil
}

// Connect opens a Session to the device, replacing the current one.
func (s *Shell) Connect(ref notify.DeviceRef) error {
	connector, err := s.Config.NewConnector()
	if err != nil {
		return err
	}
	session, err := Open(context.Background(), connector, ref, s.printEvent)
	if err != nil {
		return err
	}
	s.Disconnect()
	s.Session = session
	s.Shell.SetPrompt(ref.Name() + " > ")
	return nil
}

// Disconnect closes the current Session.
func (s *Shell) Disconnect() {
	if s.Session != nil {
		s.Session.Close()
		s.Session = nil
		s.Shell.SetPrompt(unconnectedPrompt)
	}
}

func (s *Shell) printEvent(msg fx.Message) {
	if !s.Watching() {
		return
	}
	if out, err := msgs.Format(msg, s.OutputJSON); err == nil {
		s.Shell.Println(out)
	}
}

// Run connects the configured device if AutoConnect, then processes args
// as a single command or runs the interactive shell.
func (s *Shell) Run(args ...string) {
	if ref := s.Config.Ref; s.AutoConnect && ref.IsValid() {
		if s.Interactive {
			s.Shell.Printf("Connecting %s ...\n", ref.Name())
		}
		if err := s.Connect(ref); err != nil {
			log.Fatalf("connect %q failed: %v", ref.Name(), err)
		}
	}
	defer s.Disconnect()

	switch {
	case len(args) > 0:
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
	case s.Interactive:
		s.Shell.Run()
	default:
		log.Fatalln("command expected")
	}
}

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	New(env.NewConfig()).WithAutoConnect(true).Run(flag.Args()...)
}

package pms

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakePort struct {
	io.Reader
	written bytes.Buffer
	closed  bool
}

func (p *fakePort) Write(b []byte) (int, error) {
	return p.written.Write(b)
}

func (p *fakePort) Close() error {
	p.closed = true
	return nil
}

func TestSensorResumesAfterNoData(t *testing.T) {
	frame := buildFrame(pms7003Words(8)...)
	port := &fakePort{Reader: &scriptedSource{steps: [][]byte{
		frame[:12], {}, {}, frame, {}, frame,
	}}}
	s := NewSensor(port)
	s.Reader.ReadTimeout, s.Reader.MaxRetries = true, 2
	require.Equal(t, io.EOF, s.Run(context.Background()))
	require.True(t, port.closed)
	m, ok := s.Latest()
	require.True(t, ok)
	require.Equal(t, *measurementOf(8), m)
	require.Equal(t, uint64(2), s.Decoder().Stats().Accepted)
	require.Zero(t, s.Decoder().Stats().Rejected())
}

func TestSensorPassive(t *testing.T) {
	port := &fakePort{Reader: bytes.NewReader(buildFrame(pms7003Words(1)...))}
	s := NewSensor(port)
	s.Passive, s.PollInterval = true, time.Hour
	require.Equal(t, io.EOF, s.Run(context.Background()))
	require.Equal(t, CmdPassiveMode.Bytes(), port.written.Bytes())
	_, ok := s.Latest()
	require.True(t, ok)
}

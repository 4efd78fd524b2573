package co2

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang/glog"
)

// Calibration store constants.
const (
	// DataFile is the name of the calibration file in the data directory.
	DataFile = "co2_data"
	// DefaultNotifyCount is used when the stored count is too small.
	DefaultNotifyCount = 100
	// MinNotifyCount is the smallest count honored.
	MinNotifyCount = 10
	// NotifyTick is the duration of one notify count.
	NotifyTick = 10 * time.Millisecond
)

// Record is the persisted calibration: the amplified output at ZeroPPM and
// MaxPPM in mV, and the notification period in NotifyTick.
type Record struct {
	ZeroMilliVolts int
	MaxMilliVolts  int
	NotifyCount    int
}

// DefaultRecord is used when nothing is persisted.
func DefaultRecord() Record {
	return Record{
		ZeroMilliVolts: DefaultZeroMilliVolts,
		MaxMilliVolts:  DefaultZeroMilliVolts - RangeMilliVolts,
	}
}

// RecordFromMilliVolts creates a Record for a new zero point.
func RecordFromMilliVolts(zeroMilliVolts int) Record {
	return Record{
		ZeroMilliVolts: zeroMilliVolts,
		MaxMilliVolts:  zeroMilliVolts - RangeMilliVolts,
		NotifyCount:    DefaultNotifyCount,
	}
}

// Calibration derives the Calibration from the zero point.
func (r Record) Calibration() Calibration {
	return CalibrationFromMilliVolts(r.ZeroMilliVolts)
}

// NotifyInterval is the period between notifications.
func (r Record) NotifyInterval() time.Duration {
	count := r.NotifyCount
	if count < MinNotifyCount {
		count = DefaultNotifyCount
	}
	return time.Duration(count) * NotifyTick
}

// String formats the Record as persisted.
func (r Record) String() string {
	return fmt.Sprintf("%d %d %d", r.ZeroMilliVolts, r.MaxMilliVolts, r.NotifyCount)
}

// Store persists a Record in a file.
type Store struct {
	Path string
}

// NewStore creates a Store using DataFile in dir.
func NewStore(dir string) *Store {
	return &Store{Path: filepath.Join(dir, DataFile)}
}

// Load reads the Record. DefaultRecord is returned if the file doesn't exist.
func (s *Store) Load() (Record, error) {
	data, err := ioutil.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return DefaultRecord(), nil
	}
	if err != nil {
		return Record{}, err
	}
	content := strings.TrimSpace(string(data))
	var r Record
	if _, err := fmt.Sscanf(content, "%d %d %d", &r.ZeroMilliVolts, &r.MaxMilliVolts, &r.NotifyCount); err != nil {
		return Record{}, &ErrBadRecord{Path: s.Path, Content: content}
	}
	return r, nil
}

// LoadOrDefault reads the Record like Load, but an unparsable file yields
// DefaultRecord so the sensor keeps running uncalibrated.
func (s *Store) LoadOrDefault() (Record, error) {
	r, err := s.Load()
	var bad *ErrBadRecord
	if errors.As(err, &bad) {
		glog.Warningf("%v, using defaults", err)
		return DefaultRecord(), nil
	}
	return r, err
}

// Save writes the Record, replacing the file atomically.
func (s *Store) Save(r Record) error {
	tmp, err := ioutil.TempFile(filepath.Dir(s.Path), "."+filepath.Base(s.Path))
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err = tmp.WriteString(r.String()); err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.Path)
}

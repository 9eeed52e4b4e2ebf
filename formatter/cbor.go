package formatter

import (
	"fmt"
	"io"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/philipp01105/gatelog/core"
)

// Record is the CBOR form of an entry. Integer keys keep it compact.
type Record struct {
	Time    time.Time  `cbor:"1,keyasint,omitempty"`
	Level   core.Level `cbor:"2,keyasint"`
	Tag     string     `cbor:"3,keyasint,omitempty"`
	Message string     `cbor:"4,keyasint"`
	Cause   string     `cbor:"5,keyasint,omitempty"`
	Stack   string     `cbor:"6,keyasint,omitempty"`
}

var (
	recordEncMode cbor.EncMode
	recordDecMode cbor.DecMode
)

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	}
	recordEncMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create record CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyQuiet,
		IndefLength: cbor.IndefLengthAllowed,
	}
	recordDecMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create record CBOR decoder mode: %v", err))
	}
}

// CBORFormatter encodes entries as a stream of CBOR records. It is meant
// for file sinks whose output is read back by tools, not by people.
type CBORFormatter struct {
	Config
}

// NewCBORFormatter creates a new CBOR formatter. TimestampFormat is ignored.
func NewCBORFormatter(cfg Config) *CBORFormatter {
	return &CBORFormatter{Config: cfg}
}

// Format encodes an entry as a single CBOR record
func (f *CBORFormatter) Format(entry *core.Entry) ([]byte, error) {
	return recordEncMode.Marshal(f.record(entry))
}

func (f *CBORFormatter) record(entry *core.Entry) Record {
	r := Record{
		Level:   entry.Level,
		Tag:     core.TagString(entry.Tag),
		Message: entry.Message,
	}
	if !f.OmitTime {
		r.Time = entry.Time
	}
	if entry.Err != nil {
		r.Cause, _ = rootCause(entry.Err)
		if f.ErrorStack {
			r.Stack = verbose(entry.Err)
		}
	}
	return r
}

// DecodeRecord decodes a single CBOR record.
func DecodeRecord(data []byte) (Record, error) {
	var r Record
	if err := recordDecMode.Unmarshal(data, &r); err != nil {
		return Record{}, err
	}
	return r, nil
}

// NewRecordDecoder returns a decoder that reads consecutive records from r.
func NewRecordDecoder(r io.Reader) *cbor.Decoder {
	return recordDecMode.NewDecoder(r)
}

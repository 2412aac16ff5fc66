// Command touchstone-dump streams a Touchstone (SnP) file through
// touchstone.Parser and writes each emitted frame to stdout as YAML,
// feeding it in caller-chosen chunk sizes to exercise the parser the same
// way a live acquisition loop would.
package main

import (
	"io"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/gosigrok/touchstone/touchstone"
)

var (
	chunkSize  = pflag.IntP("chunk-size", "c", 4096, "bytes per Receive call")
	strict     = pflag.BoolP("strict", "s", false, "reject rows with more values than expected instead of truncating")
	matrixDump = pflag.BoolP("matrix-debug", "m", false, "include NumPorts/ParameterKind on parameter-data frames")
)

type frameDoc struct {
	Kind          string    `yaml:"kind"`
	Data          []float64 `yaml:"data"`
	ParameterKind string    `yaml:"parameter_kind,omitempty"`
	NumPorts      int       `yaml:"num_ports,omitempty"`
}

type yamlSink struct {
	enc        *yaml.Encoder
	matrixDump bool
}

func (s *yamlSink) SessionHeaderBegin() {}
func (s *yamlSink) SessionHeaderEnd()   {}
func (s *yamlSink) FrameBegin()         {}
func (s *yamlSink) FrameEnd()           {}

func (s *yamlSink) EmitAnalog(f touchstone.Frame) error {
	doc := frameDoc{Kind: kindName(f.Kind), Data: f.Data}
	if s.matrixDump && f.Kind == touchstone.FrameParameterData {
		doc.ParameterKind = parameterKindName(f.ParameterKind)
		doc.NumPorts = f.NumPorts
	}
	return s.enc.Encode(doc)
}

func kindName(k touchstone.FrameKind) string {
	switch k {
	case touchstone.FrameReference:
		return "reference"
	case touchstone.FrameFrequency:
		return "frequency"
	case touchstone.FrameParameterData:
		return "parameter_data"
	case touchstone.FrameNoiseData:
		return "noise_data"
	default:
		return "unknown"
	}
}

func parameterKindName(k touchstone.ParameterKind) string {
	switch k {
	case touchstone.KindS:
		return "S"
	case touchstone.KindY:
		return "Y"
	case touchstone.KindZ:
		return "Z"
	case touchstone.KindG:
		return "G"
	case touchstone.KindH:
		return "H"
	default:
		return "?"
	}
}

func main() {
	pflag.Parse()
	defer glog.Flush()

	if pflag.NArg() != 1 {
		glog.Fatalf("usage: touchstone-dump [flags] <file.snp>")
	}
	path := pflag.Arg(0)

	f, err := os.Open(path)
	if err != nil {
		glog.Fatalf("opening %s: %v", path, err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(os.Stdout)
	defer enc.Close()

	sink := &yamlSink{enc: enc, matrixDump: *matrixDump}
	p := touchstone.New(sink, touchstone.WithStrict(*strict))
	glog.V(2).Infof("touchstone-dump: session %s parsing %s", p.SessionID(), path)

	buf := make([]byte, *chunkSize)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			if perr := p.Receive(buf[:n]); perr != nil {
				glog.Fatalf("parsing %s: %v", path, perr)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			glog.Fatalf("reading %s: %v", path, err)
		}
	}
	if err := p.End(); err != nil {
		glog.Fatalf("finishing parse of %s: %v", path, err)
	}
}

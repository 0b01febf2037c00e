// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"bytes"
	"encoding/json"
	goio "io"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gopkg.in/yaml.v3"
)

// Encoder defines encoders; e.g. yaml or json
type Encoder interface {
	Encode(e interface{}) error
}

// Decoder defines decoders; e.g. yaml or json
type Decoder interface {
	Decode(e interface{}) error
}

// GetEncoder returns a new encoder
func GetEncoder(w goio.Writer, enctype string) Encoder {
	if enctype == "json" {
		return json.NewEncoder(w)
	}
	return yaml.NewEncoder(w)
}

// GetDecoder returns a new decoder
func GetDecoder(r goio.Reader, enctype string) Decoder {
	if enctype == "json" {
		return json.NewDecoder(r)
	}
	return yaml.NewDecoder(r)
}

// SaveEncoded encodes v and saves it to file fn
func SaveEncoded(fn, enctype string, v interface{}, verbose bool) (err error) {
	var buf bytes.Buffer
	enc := GetEncoder(&buf, enctype)
	if err = enc.Encode(v); err != nil {
		return chk.Err("cannot encode %T:\n%v", v, err)
	}
	if c, ok := enc.(goio.Closer); ok {
		if err = c.Close(); err != nil {
			return
		}
	}
	return save_file(fn, &buf, verbose)
}

// ReadEncoded reads file fn and decodes it into v
func ReadEncoded(fn, enctype string, v interface{}) (err error) {
	fil, err := os.Open(fn)
	if err != nil {
		return chk.Err("cannot open file %q", fn)
	}
	defer fil.Close()
	if err = GetDecoder(fil, enctype).Decode(v); err != nil {
		return chk.Err("cannot decode file %q:\n%v", fn, err)
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func out_sum_path(dir, fnkey, enctype string) string {
	return filepath.Join(dir, io.Sf("%s_sum.%s", fnkey, enctype))
}

func out_nod_path(dir, fnkey, enctype string, tidx int) string {
	return filepath.Join(dir, io.Sf("%s_nod_%010d.%s", fnkey, tidx, enctype))
}

func out_dmp_path(dir, fnkey string) string {
	return filepath.Join(dir, fnkey+".dmp")
}

func save_file(filename string, buf *bytes.Buffer, verbose bool) (err error) {
	if err = os.MkdirAll(filepath.Dir(filename), 0777); err != nil {
		return
	}
	fil, err := os.Create(filename)
	if err != nil {
		return
	}
	defer func() {
		if e := fil.Close(); err == nil {
			err = e
		}
	}()
	_, err = fil.Write(buf.Bytes())
	if verbose {
		io.Pfblue2("file <%s> written\n", filename)
	}
	return
}

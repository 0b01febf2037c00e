// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"bytes"
	"log"
	"path/filepath"
	"sync"

	"github.com/cpmech/gosl/io"
)

// logging data
var (
	logMutex sync.Mutex   // guards buffer and logger
	logBuf   bytes.Buffer // buffer holding messages until FlushLog is called
	logger   *log.Logger  // logger writing to logBuf
	logPath  string       // path of log file; empty means no file
)

func init() {
	logger = log.New(&logBuf, "", log.Ltime|log.Lmicroseconds)
}

// InitLogFile initialises logger; messages are kept in memory and saved to dirout/fnkey.log by FlushLog
func InitLogFile(dirout, fnkey string) {
	logMutex.Lock()
	defer logMutex.Unlock()
	logBuf.Reset()
	logPath = ""
	if dirout != "" && fnkey != "" {
		logPath = filepath.Join(dirout, fnkey+".log")
	}
}

// Log logs a message
func Log(msg string, prm ...interface{}) {
	logMutex.Lock()
	defer logMutex.Unlock()
	logger.Printf(msg, prm...)
}

// LogErr logs error and returns true (stop) if err != nil
func LogErr(err error, msg string) (stop bool) {
	if err != nil {
		logMutex.Lock()
		logger.Printf("%s: %v\n", msg, err)
		logMutex.Unlock()
		return true
	}
	return false
}

// LogErrCond logs error and returns true (stop) if condition == true
func LogErrCond(condition bool, msg string, prm ...interface{}) (stop bool) {
	if condition {
		logMutex.Lock()
		logger.Printf(msg, prm...)
		logMutex.Unlock()
		return true
	}
	return false
}

// LogContents returns the messages logged so far
func LogContents() string {
	logMutex.Lock()
	defer logMutex.Unlock()
	return logBuf.String()
}

// FlushLog saves log (if a file was set) and clears buffer
func FlushLog() {
	logMutex.Lock()
	defer logMutex.Unlock()
	if logPath != "" && logBuf.Len() > 0 {
		dir, fn := filepath.Split(logPath)
		io.WriteFileD(dir, fn, &logBuf)
	}
	logBuf.Reset()
}

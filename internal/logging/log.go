//
// FrankyGo - UCI chess engine in GO for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

// Package logging configures the single op/go-logging backend shared by
// every package in this module and maps the string levels read from
// configuration to its numeric Level type.
package logging

import (
	"os"
	"sync"

	"github.com/op/go-logging"
)

var (
	backendOnce sync.Once
	curLevel    = logging.DEBUG
)

// Levels maps the string representation of a log level, as it appears
// in the config file, to the op/go-logging numeric level.
var Levels = map[string]logging.Level{
	"off":      -1,
	"critical": logging.CRITICAL,
	"error":    logging.ERROR,
	"warning":  logging.WARNING,
	"notice":   logging.NOTICE,
	"info":     logging.INFO,
	"debug":    logging.DEBUG,
}

func initBackend() {
	backend1 := logging.NewLogBackend(os.Stdout, "", 0)
	format := logging.MustStringFormatter(
		`%{time:15:04:05.000} %{shortfile}:%{shortfunc} %{level:7s}:  %{message}`,
	)
	backend1Formatter := logging.NewBackendFormatter(backend1, format)
	backend1Leveled := logging.AddModuleLevel(backend1Formatter)
	backend1Leveled.SetLevel(curLevel, "")
	logging.SetBackend(backend1Leveled)
}

// SetLevel sets the process-wide log level by name (see Levels). Unknown
// names are ignored, leaving the current level untouched. Rebuilding the
// backend replaces the one GetLog may already have installed; loggers
// handed out earlier keep working against the new backend.
func SetLevel(name string) {
	lvl, ok := Levels[name]
	if !ok {
		return
	}
	curLevel = lvl
	initBackend()
}

// GetLog returns a named logger backed by the shared stdout backend,
// initializing that backend the first time any caller asks for a logger.
func GetLog(name string) *logging.Logger {
	backendOnce.Do(initBackend)
	return logging.MustGetLogger(name)
}

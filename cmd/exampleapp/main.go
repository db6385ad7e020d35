// Package main is a simple example app to write logs and watch rotation happen.
package main

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/rotolog/rotolog"
	"github.com/rotolog/rotolog/rotation"
)

// ///////////////////////////////////////////////////////////////////////// //

/* This is a simple example app to write logs to see log rotation in action. */

// Usage, size rotation with the plain writer and the standard logger:
//   go run ./cmd/exampleapp size
//
// Usage, hourly+size rotation through the zap facade:
//   go run ./cmd/exampleapp zap

const (
	logFileSize     = 1024 * 1024 // 1 megabyte.
	logFilePath     = "/tmp/myfolder/myfile.log"
	bytesPerLogLine = 5000
	timeBetweenLogs = time.Millisecond * 5
	fileCount       = 10
)

// ///////////////////////////////////////////////////////////////////////// //

func main() {
	switch {
	case isArg("size"):
		sizeWriter()
	case isArg("zap"):
		zapFacade()
	default:
		fmt.Println("pass test arg: size or zap")
		os.Exit(1)
	}
}

// sizeWriter plugs the rotating writer straight into the standard logger.
func sizeWriter() {
	writer, err := rotolog.New(logFilePath, rotation.Size(logFileSize, fileCount))
	if err != nil {
		panic(err)
	}
	defer writer.Close()

	log.SetFlags(log.LstdFlags)
	log.SetOutput(writer)
	makeLogs()
}

// zapFacade builds the whole stack from the fluent builder.
func zapFacade() {
	logger, guard, err := rotolog.NewBuilder().
		Console(true).
		Level("debug").
		Format("json").
		File(logFilePath).
		Rotation(rotation.Both(rotation.Hourly, logFileSize, fileCount)).
		Buffered(time.Second).
		Init()
	if err != nil {
		panic(err)
	}
	defer guard.Close()

	logLine := string(bytes.Repeat([]byte{'_'}, bytesPerLogLine))

	ticker := time.NewTicker(timeBetweenLogs)
	for range ticker.C {
		logger.Info(logLine)
	}
}

// Write fake logs!
func makeLogs() {
	logLine := string(bytes.Repeat([]byte{'_'}, bytesPerLogLine))

	ticker := time.NewTicker(timeBetweenLogs)
	for range ticker.C {
		fmt.Print(".")

		err := log.Output(0, logLine)
		if err != nil {
			panic(err)
		}
	}
}

// seems easy, but flag is better.
func isArg(arg string) bool {
	for _, a := range os.Args {
		if strings.EqualFold(a, arg) {
			return true
		}
	}

	return false
}

package main

import (
	"github.com/rroosshhaann/whisper-diarization/cmd/diarize/cmd"
)

func main() {
	cmd.Execute()
}

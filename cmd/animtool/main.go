// animtool is a CLI utility for inspecting and playing glTF skeletal
// animations.
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "info":
		err = cmdInfo(args)
	case "sample":
		err = cmdSample(args)
	case "play":
		err = cmdPlay(args)
	case "dump":
		err = cmdDump(args)
	case "config":
		err = cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`animtool - skeletal animation inspector

Usage:
  animtool <command> [options] <model.gltf|model.glb>

Commands:
  info   <model>                         Show joints and clips
  sample [-clip name] [-t sec] <model>   Print the local pose at a time
  play   [-clip name] [-fps n] [-duration d] <model>
                                         Step a clip and print each frame
  dump   [-clip name] [-t sec] [-o file] <model>
                                         Write pose and skin matrices as YAML
  config [options] [file]                Save the effective config (default
                                         the user config dir)

Common options:
  -config file   Config file (default ./animtool.yaml or the user config dir)
  -debug         Enable debug logging
  -log file      Also write logs to file
  -skin n        Skin providing inverse bind matrices
  -loop, -no-loop
                 Override the clip's looping
  -format f      Output format for sample: text or yaml

Examples:
  animtool info fox.glb
  animtool sample -clip Walk -t 0.5 fox.glb
  animtool play -clip Run -fps 10 -duration 1s fox.glb
  animtool dump -clip Survey -t 1.2 -o pose.yaml fox.glb
  animtool config -fps 60 -no-loop animtool.yaml`)
}

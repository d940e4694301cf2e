// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2019 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// The intcode command line tool runs Intcode programs and provides an
// assembler and disassembler for them.
//
// Usage:
//
//	intcode [global flags] run FILE [flags]
//	intcode [global flags] loop FILE [flags]
//	intcode [global flags] asm FILE [-o output]
//	intcode [global flags] disasm FILE [--start address]
//
// Global flags:
//
//	--config file
//		  configuration file (default: first intcode.toml found from the
//		  current directory up)
//	--debug
//		  enable debug logging and print a full stack trace and a dump of the
//		  machine should it crash
//	--log-level level
//		  debug, info, warn or error
//	--trace kind
//		  trace every instruction executed: log, csv or sqlite
//	--trace-path file
//		  trace file name (default: intcode_trace_<unique id>.<ext> in the
//		  current directory)
//
// run: runs a program loaded from a file of comma separated integers.
//
//	-i, --input values
//		  comma separated input values, can be repeated
//	--set addr=value,...
//		  patch memory before running
//	--ascii
//		  feed lines read from stdin as character codes and print ASCII
//		  outputs as text
//	--interactive
//		  prompt for an integer whenever the program waits for input
//	--keys
//		  switch the terminal to raw mode and feed keystrokes mapped through
//		  the [keys] section of the configuration. CTRL-D stops the program.
//	--dump
//		  dump the machine state upon exit
//	--last
//		  only print the last output value
//
// loop: runs chained copies of a program, one per phase value.
//
//	--phases values
//		  comma separated phase values (default 0,1,2,3,4)
//	--seed value
//		  first input of the first machine (default 0)
//	--no-feedback
//		  do not feed the output of the last machine back to the first one
//
// Configuration:
//
// The configuration file uses the TOML format:
//
//	[log]
//	level = "info"     # debug, info, warn or error
//	format = "text"    # text or json
//	file = ""          # additional JSON log file
//	journal = false    # also log to the systemd journal
//
//	[trace]
//	kind = ""          # log, csv or sqlite
//	path = ""
//
//	[keys]             # keystroke to input value for run --keys
//	a = -1
//	d = 1
//
// A .env file in the current directory is loaded on startup. The environment
// variables INTCODE_LOG_LEVEL, INTCODE_LOG_FORMAT, INTCODE_LOG_FILE,
// INTCODE_JOURNAL, INTCODE_TRACE and INTCODE_TRACE_PATH override the
// configuration file. Command line flags override both.
package main

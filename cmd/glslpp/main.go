// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// The glslpp command preprocesses one or more shader source files: macro
// expansion and conditional compilation, printed to standard output or
// written to an output directory.
package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/06wj/glsl-parser"
)

// defineFlag collects repeated -D name=value flags into an ordered list so
// multiple -D occurrences behave the way a C compiler's command line does.
type defineFlag []string

func (d *defineFlag) String() string { return strings.Join(*d, ",") }

func (d *defineFlag) Set(value string) error {
	*d = append(*d, value)
	return nil
}

// fileConfig is the shape of a -config YAML file: an alternative to
// repeating -D on the command line for projects with many seed defines.
type fileConfig struct {
	Defines     map[string]string `yaml:"defines"`
	StopOnError bool              `yaml:"stopOnError"`
}

var (
	defines     defineFlag
	globPattern = flag.String("glob", "", "Doublestar glob pattern selecting input files, in place of positional arguments")
	configPath  = flag.String("config", "", "YAML file of defines/options, merged under any -D flags")
	stopOnError = flag.Bool("stopOnError", false, "Fail on #error directives instead of silently dropping them")
	outDir      = flag.String("out", "", "Directory for preprocessed output; if empty, results are printed to stdout")
)

func init() {
	flag.Var(&defines, "D", "Seed define, as name=value; may be repeated")
}

func main() {
	flag.Parse()

	inputs, err := resolveInputs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "glslpp: %v\n", err)
		os.Exit(1)
	}
	if len(inputs) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	opts, err := buildOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "glslpp: %v\n", err)
		os.Exit(1)
	}

	var wg sync.WaitGroup
	var failed int32
	for _, input := range inputs {
		input := input
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := processFile(input, opts); err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", input, err)
				atomic.StoreInt32(&failed, 1)
			}
		}()
	}
	wg.Wait()

	os.Exit(int(atomic.LoadInt32(&failed)))
}

func resolveInputs() ([]string, error) {
	if *globPattern == "" {
		return flag.Args(), nil
	}
	matches, err := doublestar.FilepathGlob(*globPattern)
	if err != nil {
		return nil, errors.Wrapf(err, "glob %q", *globPattern)
	}
	return matches, nil
}

func buildOptions() (glslpp.Options, error) {
	opts := glslpp.Options{
		Defines:       map[string]string{},
		StopOnError:   *stopOnError,
		GrammarSource: "glslpp",
	}

	if *configPath != "" {
		raw, err := ioutil.ReadFile(*configPath)
		if err != nil {
			return opts, errors.Wrapf(err, "reading config %q", *configPath)
		}
		var cfg fileConfig
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return opts, errors.Wrapf(err, "parsing config %q", *configPath)
		}
		for name, body := range cfg.Defines {
			opts.Defines[name] = body
		}
		if cfg.StopOnError {
			opts.StopOnError = true
		}
	}

	for _, d := range defines {
		name, body := d, ""
		if i := strings.IndexByte(d, '='); i >= 0 {
			name, body = d[:i], d[i+1:]
		}
		opts.Defines[name] = body
	}

	return opts, nil
}

func processFile(input string, opts glslpp.Options) error {
	source, err := ioutil.ReadFile(input)
	if err != nil {
		return errors.Wrap(err, "reading input")
	}

	result, err := glslpp.Preprocess(string(source), opts)
	if err != nil {
		return errors.Wrap(err, "preprocessing")
	}

	if *outDir == "" {
		fmt.Print(result)
		return nil
	}

	if err := os.MkdirAll(*outDir, 0777); err != nil {
		return errors.Wrap(err, "creating output directory")
	}
	output := filepath.Join(*outDir, filepath.Base(input))
	if err := ioutil.WriteFile(output, []byte(result), 0666); err != nil {
		return errors.Wrap(err, "writing output")
	}
	return nil
}

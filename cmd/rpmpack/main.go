// Copyright 2019 Google LLC
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

package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/pterm/pterm"
	"go.uber.org/zap"
	"golang.org/x/term"

	rpmpack "github.com/rpmkit/rpmheader"
)

var (
	name       = flag.String("name", "rpmsample", "the package name")
	version    = flag.String("version", "0", "the package version")
	release    = flag.String("release", "0", "the rpm release")
	spec       = flag.String("spec", "", "load package metadata from a TOML spec `FILE`; flags still take precedence")
	compressor = flag.String("compressor", "", "payload compressor: gzip, zstd, xz or lzma (default gzip)")

	outputfile = flag.String("file", "", "write rpm to `FILE` instead of stdout")

	owner    = flag.String("owner", "root", "use `NAME` as owner")
	group    = flag.String("group", "root", "use `NAME` as group")
	filemode = flag.String("filemode", "0644", "octal mode of files. Setting to 0 will read the permission bits from the files.")
	dirmode  = flag.String("dirmode", "0755", "octal mode of dirs. Setting to 0 will read the permission bits from the dirs.")
	mtime    = flag.Uint("mtime", 0, "change timestamp of files")
	verbose  = flag.Bool("v", false, "verbose logging")
)

// packageSpec is the subset of RPMMetaData that can be supplied via -spec,
// so CI pipelines can check in one file instead of a long flag list.
type packageSpec struct {
	Name        string `toml:"name"`
	Summary     string `toml:"summary"`
	Description string `toml:"description"`
	Version     string `toml:"version"`
	Release     string `toml:"release"`
	Arch        string `toml:"arch"`
	Vendor      string `toml:"vendor"`
	License     string `toml:"license"`
	Packager    string `toml:"packager"`
	Group       string `toml:"group"`
	URL         string `toml:"url"`
	Compressor  string `toml:"compressor"`
}

func usage() {
	fmt.Fprintf(os.Stderr,
		`Usage:
  %s [OPTION] [FILE]...
Options:
`, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	logger := newLogger(*verbose)
	defer logger.Sync()

	md := rpmpack.RPMMetaData{
		Name:       *name,
		Version:    *version,
		Release:    *release,
		Compressor: *compressor,
	}
	if *spec != "" {
		var ps packageSpec
		if _, err := toml.DecodeFile(*spec, &ps); err != nil {
			logger.Fatal("failed to read spec file", zap.String("file", *spec), zap.Error(err))
		}
		applySpec(&md, ps)
		logger.Debug("loaded package spec", zap.String("file", *spec))
	}

	fmode := parseOctFlag(logger, *filemode)
	dmode := parseOctFlag(logger, *dirmode)

	w := os.Stdout
	if *outputfile != "" {
		f, err := os.Create(*outputfile)
		if err != nil {
			logger.Fatal("failed to open output file", zap.String("file", *outputfile), zap.Error(err))
		}
		defer f.Close()
		w = f
	}

	r, err := rpmpack.FromFiles(
		flag.Args(),
		md,
		rpmpack.Opts{
			Owner:    *owner,
			Group:    *group,
			FileMode: fmode,
			DirMode:  dmode,
			Mtime:    *mtime,
		})
	if err != nil {
		logger.Fatal("failed to build rpm", zap.Error(err))
	}
	if err := r.Write(w); err != nil {
		logger.Fatal("failed to write rpm", zap.Error(err))
	}

	printDone(md)
}

// applySpec overlays spec-file fields onto md. For name, version, release
// and compressor it does so only where the flag still holds its default
// value, so a flag set to any other value wins; a flag set explicitly to
// its default value is overridden by the spec file.
func applySpec(md *rpmpack.RPMMetaData, ps packageSpec) {
	if ps.Name != "" && *name == "rpmsample" {
		md.Name = ps.Name
	}
	if ps.Version != "" && *version == "0" {
		md.Version = ps.Version
	}
	if ps.Release != "" && *release == "0" {
		md.Release = ps.Release
	}
	md.Summary = ps.Summary
	md.Description = ps.Description
	md.Arch = ps.Arch
	md.Vendor = ps.Vendor
	md.Licence = ps.License
	md.Packager = ps.Packager
	md.Group = ps.Group
	md.URL = ps.URL
	if md.Compressor == "" {
		md.Compressor = ps.Compressor
	}
}

func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		// zap itself failed to initialize; fall back to a no-op logger
		// rather than leave the CLI unable to report the real error.
		return zap.NewNop()
	}
	return logger
}

func printDone(md rpmpack.RPMMetaData) {
	line := fmt.Sprintf("built %s-%s.%s.rpm", md.Name, md.Version, md.Arch)
	if term.IsTerminal(int(os.Stdout.Fd())) {
		pterm.Success.Println(line)
		return
	}
	fmt.Fprintln(os.Stderr, line)
}

func parseOctFlag(logger *zap.Logger, v string) uint {
	var m uint
	if v != "" {
		m64, err := strconv.ParseInt(v, 8, 64)
		if err != nil {
			logger.Fatal("failed to parse mode as octal", zap.String("value", v), zap.Error(err))
		}
		m = uint(m64)
	}
	return m
}

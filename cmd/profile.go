package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"golang.org/x/mod/semver"

	"irkit/common"
	"irkit/report"
)

// tomlModule represents a module entry of a build profile as it is encoded in
// TOML.
type tomlModule struct {
	Name         string `toml:"name"`
	Sample       string `toml:"sample"`
	TargetTriple string `toml:"target-triple"`
	DataLayout   string `toml:"data-layout"`
}

// tomlProfile represents a build profile as it is encoded in TOML.
type tomlProfile struct {
	IrkitVersion string       `toml:"irkit-version"`
	OutputDir    string       `toml:"output-dir"`
	Modules      []tomlModule `toml:"modules"`
}

// BuildProfile is a validated build profile.
type BuildProfile struct {
	// The absolute path to the profile file.
	Path string

	// The absolute path to the directory the IR files are written to.
	OutputDir string

	Modules []ModuleConfig
}

// ModuleConfig describes a single module to build.
type ModuleConfig struct {
	Name         string
	Sample       string
	TargetTriple string
	DataLayout   string
}

// OutputPath returns the path of the IR file the module is written to.
func (mc ModuleConfig) OutputPath(prof *BuildProfile) string {
	return filepath.Join(prof.OutputDir, mc.Name+common.IRFileExt)
}

// LoadProfile loads and validates the build profile at path.  Problems that do
// not prevent the build, such as a version mismatch, are reported as warnings.
func LoadProfile(path string) (*BuildProfile, error) {
	abspath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	buff, err := os.ReadFile(abspath)
	if err != nil {
		return nil, fmt.Errorf("unable to open profile: %w", err)
	}

	tomlProf := &tomlProfile{}
	if err := toml.Unmarshal(buff, tomlProf); err != nil {
		return nil, fmt.Errorf("error parsing profile at `%s`: %w", path, err)
	}

	prof := &BuildProfile{Path: abspath}
	if err := validateProfile(prof, tomlProf); err != nil {
		return nil, err
	}

	return prof, nil
}

// validateProfile checks that the profile contents are valid and moves them
// over into prof.
func validateProfile(prof *BuildProfile, tomlProf *tomlProfile) error {
	if err := checkVersion(tomlProf.IrkitVersion); err != nil {
		return err
	}

	outputDir := tomlProf.OutputDir
	if outputDir == "" {
		outputDir = common.DefaultOutputDir
	}

	// output directories are relative to the profile
	if !filepath.IsAbs(outputDir) {
		outputDir = filepath.Join(filepath.Dir(prof.Path), outputDir)
	}
	prof.OutputDir = outputDir

	if len(tomlProf.Modules) == 0 {
		return errors.New("profile must declare at least one module")
	}

	var errs []error
	seen := make(map[string]struct{})
	for i, tm := range tomlProf.Modules {
		switch {
		case tm.Name == "":
			errs = append(errs, fmt.Errorf("module %d: missing module name", i))
			continue
		case strings.ContainsAny(tm.Name, "\x00/\\"):
			errs = append(errs, fmt.Errorf("module %d: invalid module name %q", i, tm.Name))
			continue
		}

		if _, ok := seen[tm.Name]; ok {
			errs = append(errs, fmt.Errorf("module `%s` is declared more than once", tm.Name))
			continue
		}
		seen[tm.Name] = struct{}{}

		if _, ok := samples[tm.Sample]; !ok {
			errs = append(errs, fmt.Errorf("module `%s`: unknown sample `%s` (choose from %s)", tm.Name, tm.Sample, strings.Join(sampleNames(), ", ")))
			continue
		}

		prof.Modules = append(prof.Modules, ModuleConfig(tm))
	}

	return errors.Join(errs...)
}

// checkVersion checks the irkit version declared by a profile against the
// current version.  A mismatch is only a warning.
func checkVersion(version string) error {
	if version == "" {
		report.ReportWarning("Profile", "profile does not declare an irkit version")
		return nil
	}

	v := "v" + version
	if !semver.IsValid(v) {
		return fmt.Errorf("malformed irkit version `%s`", version)
	}

	if semver.Compare(v, "v"+common.IrkitVersion) != 0 {
		report.ReportWarning("Profile", "profile version (v%s) does not match current irkit version (v%s)", version, common.IrkitVersion)
	}

	return nil
}

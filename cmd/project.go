package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"brio/common"
	"brio/report"

	"github.com/pelletier/go-toml"
)

// Project represents a Brio project: a named collection of settings that
// determines what gets compiled and where the output goes.
type Project struct {
	// Name is the name of the project.
	Name string

	// EntryPath is the absolute path to the source file to compile.
	EntryPath string

	// OutputPath is the absolute path the generated IR is written to.
	OutputPath string
}

// tomlProject represents a Brio project as it is encoded in TOML
type tomlProject struct {
	Name        string `toml:"name"`
	Entry       string `toml:"entry"`
	Output      string `toml:"output"`
	BrioVersion string `toml:"brio-version"`
}

// LoadProject loads and validates a project file.  `abspath` is the absolute
// path to the project directory.
func LoadProject(abspath string) *Project {
	// read the file contents
	buff, err := os.ReadFile(filepath.Join(abspath, common.BrioProjectFileName))
	if err != nil {
		report.ReportFatal("unable to read project file at `%s`: %s", abspath, err.Error())
		return nil
	}

	// unmarshal the contents
	tomlProj := &tomlProject{}
	if err := toml.Unmarshal(buff, tomlProj); err != nil {
		report.ReportFatal("error parsing project file at `%s`: %s", abspath, err.Error())
		return nil
	}

	return validateProject(abspath, tomlProj)
}

// validateProject checks that the project file contents are valid and builds
// the final project from them.
func validateProject(abspath string, tomlProj *tomlProject) *Project {
	if tomlProj.Name == "" {
		report.ReportFatal("project file at `%s` is missing a project name", abspath)
		return nil
	}

	if tomlProj.Entry == "" {
		report.ReportFatal("project file at `%s` is missing an entry file", abspath)
		return nil
	}

	if tomlProj.BrioVersion != "" && tomlProj.BrioVersion != common.BrioVersion {
		report.PrintWarningMessage("Project", fmt.Sprintf("project `%s` targets brio v%s which does not match current brio version (v%s)",
			tomlProj.Name,
			tomlProj.BrioVersion,
			common.BrioVersion,
		))
	}

	proj := &Project{
		Name:      tomlProj.Name,
		EntryPath: filepath.Join(abspath, tomlProj.Entry),
	}

	if tomlProj.Output == "" {
		proj.OutputPath = filepath.Join(abspath, proj.Name+common.BrioOutputExt)
	} else {
		proj.OutputPath = filepath.Join(abspath, tomlProj.Output)
	}

	return proj
}

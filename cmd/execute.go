package cmd

import (
	"context"
	"os"

	"github.com/ComedicChimera/olive"
	"github.com/pterm/pterm"

	"irkit/common"
	"irkit/report"
)

// Execute is the main entry point for the `irkit` CLI utility.  It returns the
// exit status of the program.
func Execute() int {
	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("irkit", "irkit builds sample IR modules described by build profiles", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the log level", false, []string{"silent", "error", "warn", "verbose"})
	logLvlArg.SetDefaultValue("verbose")
	cli.AddFlag("no-color", "nc", "disable colored output")

	buildCmd := cli.AddSubcommand("build", "build the modules of a profile", true)
	buildCmd.AddPrimaryArg("profile-path", "the path to the build profile", true)

	cli.AddSubcommand("samples", "list the sample programs a profile can build", false)
	cli.AddSubcommand("version", "print the irkit version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		report.InitReporter(report.LogLevelError, os.Stdout)
		report.ReportError("CLI Usage", err)
		return 1
	}

	if result.HasFlag("no-color") || os.Getenv("NO_COLOR") != "" {
		pterm.DisableColor()
	}

	logLevel, _ := report.ParseLogLevel(result.Arguments["loglevel"].(string))
	report.InitReporter(logLevel, os.Stdout)

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "build":
		return execBuildCommand(subResult)
	case "samples":
		for _, name := range sampleNames() {
			report.DisplayInfoMessage(name, samples[name].Description)
		}
	case "version":
		report.DisplayInfoMessage("irkit Version", common.IrkitVersion)
	}

	return 0
}

// execBuildCommand executes the build subcommand and handles all errors.
func execBuildCommand(result *olive.ArgParseResult) int {
	profilePath, _ := result.PrimaryArg()

	prof, err := LoadProfile(profilePath)
	if err != nil {
		report.ReportError("Profile", err)
		return 1
	}

	report.ReportInfo("irkit", "v%s building %d module(s) from %s", common.IrkitVersion, len(prof.Modules), profilePath)

	if failed := Build(context.Background(), prof, 0); failed > 0 {
		report.ReportFatal("%d of %d module(s) failed to build", failed, len(prof.Modules))
		return 1
	}

	return 0
}

/*
Package cli provides command-line helpers for the simdxf command.

Output Formatting:

Command results are printed as text, JSON or CSV. Results that implement
Table are printed as aligned columns in text mode and as rows in CSV mode:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, summary); err != nil {
		return err
	}

Progress Reporting:

Commands working through many files report progress on stderr:

	progress := cli.NewProgressReporter(os.Stderr)
	progress.Start(int64(len(paths)))
	for i, p := range paths {
		convert(p)
		progress.Update(int64(i + 1))
	}
	progress.Finish()

Exit Codes:

ExitCode maps an error onto the process exit code. Malformed files,
unsupported versions and unresolved references each have their own code
so scripts can tell them apart.

Signal Handling:

	ctx, stop := cli.SetupSignalHandler()
	defer stop()
*/
package cli

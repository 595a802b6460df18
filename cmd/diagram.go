package cmd

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/abhisek/betopper/internal/study"
	"github.com/abhisek/betopper/internal/ui/theme"
)

var diagramCmd = &cobra.Command{
	Use:   "diagram <topic>",
	Short: "Get a labelled science diagram with drawing tips",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd, appOptions{profile: true, llm: true})
		if err != nil {
			return err
		}
		defer a.Close()

		class, err := classFlag(cmd, a.profile.Class)
		if err != nil {
			return err
		}
		pkg, err := a.study.Diagram(cmd.Context(), class, topicArg(args))
		if err != nil {
			return a.report(err)
		}

		fmt.Fprintln(a.out, theme.Title.Render("Diagram: "+pkg.Topic))
		fmt.Fprintln(a.out)
		printDiagramDescription(a, pkg)
		return writeDiagramImage(cmd, a, pkg)
	},
}

func printDiagramDescription(a *app, pkg *study.DiagramPackage) {
	if pkg.Description == nil {
		fmt.Fprintln(a.out, theme.Failure.Render(study.UserMessage(pkg.DescriptionErr)))
		return
	}
	d := pkg.Description
	fmt.Fprintln(a.out, d.Description)
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, theme.Heading.Render("Labels"))
	for _, l := range d.Labels {
		fmt.Fprintf(a.out, "  %s  %s\n", theme.Correct.Render(l.Name), l.Function)
	}
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, theme.Heading.Render("Drawing tips"))
	for _, t := range d.Tips {
		fmt.Fprintf(a.out, "  - %s\n", t)
	}
	fmt.Fprintln(a.out)
}

func writeDiagramImage(cmd *cobra.Command, a *app, pkg *study.DiagramPackage) error {
	if pkg.Image == nil {
		fmt.Fprintln(a.out, theme.Hint.Render(study.UserMessage(pkg.ImageErr)))
		return nil
	}
	if uri, _ := cmd.Flags().GetBool("data-uri"); uri {
		fmt.Fprintln(a.out, pkg.Image.DataURI())
	}
	path, _ := cmd.Flags().GetString("out")
	if path == "" {
		fmt.Fprintln(a.out, theme.Hint.Render(fmt.Sprintf("Image ready (%s, %s); use --out to save it.",
			pkg.Image.MIMEType, humanize.Bytes(uint64(len(pkg.Image.Data))))))
		return nil
	}
	if err := os.WriteFile(path, pkg.Image.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintln(a.out, theme.Hint.Render("Image saved to "+path))
	return nil
}

func init() {
	diagramCmd.Flags().StringP("class", "c", "", "Class 9-12 (defaults to your profile's class)")
	diagramCmd.Flags().StringP("out", "o", "", "Write the diagram image to this file")
	diagramCmd.Flags().Bool("data-uri", false, "Print the image as a data URI")
}

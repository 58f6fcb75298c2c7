package audit

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Family is one surviving parent and the clones linked to it, in output order.
type Family struct {
	Parent string
	Clones []string
}

const keepRemoveIntro = "This file shows which titles have been kept in the output dat with a `+`,\n" +
	"and which have been automatically removed by retool with a `-`. If the\n" +
	"`-` is indented, then the title was removed because it was a clone of the\n" +
	"title above it with a `+`.\n"

const userRemoveIntro = "This file shows which titles have been removed from the output dat\n" +
	"due to the user setting an option.\n"

// KeepRemoveListPath returns the auto keep-remove list path for a dat output path.
func KeepRemoveListPath(datPath string) string {
	return strings.TrimSuffix(datPath, ".dat") + " auto keep-remove list.txt"
}

// UserRemoveListPath returns the user remove list path for a dat output path.
func UserRemoveListPath(datPath string) string {
	return strings.TrimSuffix(datPath, ".dat") + " user remove list.txt"
}

// WriteKeepRemove renders standalones first, then parents with their
// indented clones.
func WriteKeepRemove(w io.Writer, families []Family) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(keepRemoveIntro)
	bw.WriteString("\n# STANDALONES\n==============\n")
	hasClones := false
	for _, family := range families {
		if len(family.Clones) == 0 {
			fmt.Fprintf(bw, "+ %s\n", family.Parent)
			continue
		}
		hasClones = true
	}
	if hasClones {
		bw.WriteString("\n\n# PARENTS & CLONES\n===================\n")
		for _, family := range families {
			if len(family.Clones) == 0 {
				continue
			}
			fmt.Fprintf(bw, "+ %s\n", family.Parent)
			for _, clone := range family.Clones {
				fmt.Fprintf(bw, "\t- %s\n", clone)
			}
		}
	}
	return bw.Flush()
}

// WriteUserRemove renders a key index followed by one section per reason.
func WriteUserRemove(w io.Writer, trail *Trail) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(userRemoveIntro)
	reasons := trail.Reasons()
	if len(reasons) > 0 {
		bw.WriteString("\nKEYS\n====\n")
		for _, reason := range reasons {
			fmt.Fprintf(bw, "* %s\n", reasonHeading(reason))
		}
		bw.WriteString("\n")
		for _, reason := range reasons {
			fmt.Fprintf(bw, "\n# %s\n%s\n", reasonHeading(reason), strings.Repeat("=", len(reason)+2))
			for _, name := range trail.Names(reason) {
				fmt.Fprintf(bw, "- %s\n", name)
			}
			bw.WriteString("\n")
		}
	}
	return bw.Flush()
}

func reasonHeading(reason string) string {
	return strings.ToUpper(strings.ReplaceAll(reason, "_", " "))
}

// WriteListFiles writes the list files next to datPath and returns the paths
// written. The user remove list is skipped when nothing was removed by an option.
func WriteListFiles(datPath string, families []Family, trail *Trail) ([]string, error) {
	var written []string
	keepPath := KeepRemoveListPath(datPath)
	if err := writeFile(keepPath, func(w io.Writer) error { return WriteKeepRemove(w, families) }); err != nil {
		return written, err
	}
	written = append(written, keepPath)
	if trail == nil || trail.Empty() {
		return written, nil
	}
	userPath := UserRemoveListPath(datPath)
	if err := writeFile(userPath, func(w io.Writer) error { return WriteUserRemove(w, trail) }); err != nil {
		return written, err
	}
	return append(written, userPath), nil
}

func writeFile(path string, render func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := render(file); err != nil {
		_ = file.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// Command dcmdump prints the element tree of a DICOM file, and optionally
// extracts encapsulated PixelData fragments to disk.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dicomkit/dicom"
)

var (
	strict       bool
	extractPixel string
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dcmdump <file>",
		Short: "Print a DICOM file's element tree",
		Args:  cobra.ExactArgs(1),
		RunE:  runDump,
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on non-fatal oddities instead of collecting warnings")
	cmd.Flags().StringVar(&extractPixel, "extract-pixel", "", "directory to extract encapsulated PixelData fragments into")
	return cmd
}

func runDump(cmd *cobra.Command, args []string) error {
	path := args[0]

	var opts []dicom.ReadOption
	if strict {
		opts = append(opts, dicom.WithStrict())
	}

	f, err := dicom.ReadFile(path, opts...)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	fmt.Printf("Transfer Syntax: %s\n", transferSyntaxName(f.TransferSyntax))
	for _, w := range f.Warnings {
		fmt.Printf("warning: %s\n", w)
	}
	printDataSet(f.DataSet, 0)

	if extractPixel != "" {
		return extractFragments(f, path)
	}
	return nil
}

func transferSyntaxName(uid string) string {
	if e, ok := dicom.LookupTransferSyntax(uid); ok {
		return e.Name
	}
	return uid
}

func printDataSet(ds *dicom.DataSet, depth int) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	for _, e := range ds.Elements() {
		name := e.Tag.String()
		if entry, ok := dicom.LookupTag(e.Tag); ok {
			name = entry.Keyword
		}
		switch {
		case e.IsEncapsulatedPixelData():
			fmt.Printf("%s%s %s [%d encapsulated fragment(s)]\n", indent, e.Tag, name, len(e.Fragments))
		case e.IsSequence():
			fmt.Printf("%s%s %s SQ (%d item(s))\n", indent, e.Tag, name, len(e.Items))
			for i, item := range e.Items {
				fmt.Printf("%s  item %d:\n", indent, i)
				printDataSet(item, depth+2)
			}
		default:
			fmt.Printf("%s%s %s %s [%d byte(s)]\n", indent, e.Tag, name, e.VR, len(e.ValueBytes))
		}
	}
}

func extractFragments(f *dicom.File, sourcePath string) error {
	pixelData, ok := f.DataSet.Get(dicom.TagPixelData)
	if !ok || len(pixelData.Fragments) == 0 {
		return nil
	}
	if err := os.MkdirAll(extractPixel, 0o755); err != nil {
		return err
	}
	base := filepath.Base(sourcePath)
	for i, frag := range pixelData.Fragments {
		if i == 0 {
			continue // fragment 0 is the Basic Offset Table, not image data
		}
		name := fmt.Sprintf("%s.frame%04d.bin", base, i)
		if err := os.WriteFile(filepath.Join(extractPixel, name), frag, 0o644); err != nil {
			return err
		}
	}
	return nil
}

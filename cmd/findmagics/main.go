package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/profile"

	. "github.com/cricklet/magics/internal/helpers"
	"github.com/cricklet/magics/internal/lookup"
	"github.com/cricklet/magics/internal/magic"
	"github.com/cricklet/magics/internal/magicstore"
)

// mergeKnown prefers stored magics over the embedded ones, square by square.
func mergeKnown(embedded map[string][64]magic.MagicValue, stored map[string][64]magic.MagicValue) map[string][64]magic.MagicValue {
	result := map[string][64]magic.MagicValue{}
	for slider, magics := range embedded {
		result[slider] = magics
	}
	for slider, magics := range stored {
		merged := result[slider]
		for i, m := range magics {
			if m.Magic != 0 {
				merged[i] = m
			}
		}
		result[slider] = merged
	}
	return result
}

func main() {
	err := run(os.Args[1:])
	if !IsNil(err) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run prints the magics it finds as Go source. Squares that ran out of
// attempts are printed as zero and reported in the returned error.
func run(args []string) Error {
	if Contains(args, "profile") {
		p := profile.Start(profile.ProfilePath("data/FindMagics"))
		defer p.Stop()
	}

	storeDir := ""
	args = FilterSlice(args, func(arg string) bool {
		if strings.HasPrefix(arg, "store=") {
			storeDir = strings.TrimPrefix(arg, "store=")
			return false
		}
		return arg != "profile"
	})

	options, err := magic.OptionsFromArgs(args...)
	if !IsNil(err) {
		return err
	}
	options.Logger = &DefaultLogger

	var store *magicstore.Store
	if storeDir != "" {
		store, err = magicstore.Open(storeDir)
		if !IsNil(err) {
			return err
		}
		defer store.Close()

		stored, err := store.KnownMagics(magic.Rook.Name, magic.Bishop.Name)
		if !IsNil(err) {
			return err
		}
		if options.KnownMagics != nil {
			options.KnownMagics = mergeKnown(options.KnownMagics, stored)
		}
	}

	progress := CreateProgressBar(2*64, "magics")
	options.Observer = func(report magic.Report) {
		progress.Add(1)
	}

	l, err := lookup.Build(options)
	progress.Close()
	if l == nil {
		return err
	}

	if store != nil {
		for _, slider := range []magic.Slider{magic.Rook, magic.Bishop} {
			entries, _ := l.Entries(slider.Name)
			if saveErr := store.SaveEntries(slider.Name, entries); !IsNil(saveErr) {
				return saveErr
			}
		}
	}

	rookMagics, _ := l.Magics(magic.Rook.Name)
	bishopMagics, _ := l.Magics(magic.Bishop.Name)
	fmt.Println(magic.FormatMagics("RookBestMagics", rookMagics))
	fmt.Println(magic.FormatMagics("BishopBestMagics", bishopMagics))

	return err
}

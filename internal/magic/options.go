package magic

import (
	"runtime"
	"strconv"
	"strings"

	. "github.com/cricklet/magics/internal/helpers"
)

const (
	DefaultMaxAttempts = 1_000_000
	DefaultMinTopBits  = 0
)

type Options struct {
	// Seed fixes the random candidates; the same seed always finds the same
	// magics.
	Seed int64
	// MaxAttempts caps the candidates drawn per square.
	MaxAttempts int
	// MinTopBits skips candidates whose product with the mask has fewer set
	// bits in its top byte. Skipped candidates still count towards
	// MaxAttempts, so a high value can exhaust the budget. Zero disables the
	// check.
	MinTopBits int
	// Workers bounds how many squares are searched at once.
	Workers int
	// KnownMagics, keyed by slider name, are tried before random candidates.
	// Zero magics are skipped.
	KnownMagics map[string][64]MagicValue

	Validate ValidateFunc
	// Observer is called once per square, possibly from several goroutines.
	Observer func(Report)
	Logger   Logger
}

func DefaultOptions() Options {
	return Options{
		Seed:        0,
		MaxAttempts: DefaultMaxAttempts,
		MinTopBits:  DefaultMinTopBits,
		Workers:     runtime.NumCPU(),
		KnownMagics: map[string][64]MagicValue{
			Rook.Name:   RookBestMagics,
			Bishop.Name: BishopBestMagics,
		},
		Validate: ValidateMagic,
		Logger:   &SilentLogger,
	}
}

func (o Options) withDefaults() Options {
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.Validate == nil {
		o.Validate = ValidateMagic
	}
	if o.Logger == nil {
		o.Logger = &SilentLogger
	}
	return o
}

func parseIntOption(arg string) (int64, Error) {
	value := arg[strings.Index(arg, "=")+1:]
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, Errorf("option %q: %w", arg, err)
	}
	return n, NilError
}

// OptionsFromArgs starts from DefaultOptions and applies key=value arguments:
// seed, attempts, topbits, workers, plus the bare flag noknown.
func OptionsFromArgs(args ...string) (Options, Error) {
	options := DefaultOptions()

	for _, arg := range args {
		var n int64
		var err Error

		switch {
		case strings.HasPrefix(arg, "seed="):
			n, err = parseIntOption(arg)
			options.Seed = n
		case strings.HasPrefix(arg, "attempts="):
			n, err = parseIntOption(arg)
			if IsNil(err) && n <= 0 {
				err = Errorf("option %q: must be positive", arg)
			}
			options.MaxAttempts = int(n)
		case strings.HasPrefix(arg, "topbits="):
			n, err = parseIntOption(arg)
			options.MinTopBits = int(n)
		case strings.HasPrefix(arg, "workers="):
			n, err = parseIntOption(arg)
			if IsNil(err) && n <= 0 {
				err = Errorf("option %q: must be positive", arg)
			}
			options.Workers = int(n)
		case arg == "noknown":
			options.KnownMagics = nil
		default:
			err = Errorf("unknown option: %s", arg)
		}

		if !IsNil(err) {
			return options, err
		}
	}

	return options, NilError
}

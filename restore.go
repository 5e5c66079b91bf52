package msbackup

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Report tallies everything a restore run did. The run always finishes and
// reports problems here instead of stopping at the first one.
type Report struct {
	Volumes      int              `json:"volumes"`
	FilesWritten int              `json:"filesWritten"`
	BytesWritten int64            `json:"bytesWritten"`
	Skipped      []string         `json:"skipped,omitempty"`      // fragment record paths excluded from reassembly
	Duplicates   []string         `json:"duplicates,omitempty"`   // logical paths completed more than once
	Unfinished   []UnfinishedFile `json:"unfinished,omitempty"`   // logical paths still pending at end of run
	HeaderErrors []string         `json:"headerErrors,omitempty"` // volumes whose identity could not be loaded
	Warnings     []string         `json:"warnings,omitempty"`     // non-fatal validation findings
}

// Restorer drives one restore run: discover volume headers, decode every
// fragment record, feed the assembler, write completed files. It owns the
// run's only mutable state (assembler and write history); nothing here is
// safe for concurrent use.
type Restorer struct {
	fs     FileSystem
	out    *Writer
	asm    *Assembler
	log    zerolog.Logger
	strict bool
}

// Option configures a Restorer.
type Option func(*Restorer)

// WithLogger attaches a logger for run progress. Default is a no-op logger.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Restorer) { r.log = l }
}

// WithFileSystem substitutes the filesystem used to read volumes.
func WithFileSystem(fsys FileSystem) Option {
	return func(r *Restorer) { r.fs = fsys }
}

// WithStrictHeaders makes a volume header decode failure abort the run
// instead of skipping that volume.
func WithStrictHeaders() Option {
	return func(r *Restorer) { r.strict = true }
}

// NewRestorer returns a Restorer writing restored files under outputRoot.
func NewRestorer(outputRoot string, opts ...Option) *Restorer {
	r := &Restorer{
		fs:  defaultFS,
		out: NewWriter(outputRoot),
		asm: NewAssembler(),
		log: zerolog.Nop(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Restore is a convenience that restores every volume found under top into
// outputRoot using the default filesystem.
func Restore(top, outputRoot string) (*Report, error) {
	return NewRestorer(outputRoot).Run(top)
}

// Run restores all volumes found under top. Fatal errors are limited to
// discovery/IO failures and, in strict mode, unreadable volume headers;
// everything else lands in the Report.
func (r *Restorer) Run(top string) (*Report, error) {
	headers, err := DiscoverVolumesFS(r.fs, top)
	if err != nil {
		return nil, fmt.Errorf("discover volumes: %w", err)
	}
	rep := &Report{}
	for _, hp := range headers {
		if err := r.processVolume(hp, rep); err != nil {
			if r.strict {
				return nil, fmt.Errorf("%s: %w", hp, err)
			}
			r.log.Warn().Str("volume", hp).Err(err).Msg("skipping volume")
			rep.HeaderErrors = append(rep.HeaderErrors, fmt.Sprintf("%s: %v", hp, err))
		}
	}
	rep.Unfinished = r.asm.Unfinished()
	rep.Warnings = append(rep.Warnings, r.asm.Inconsistencies()...)
	rep.Warnings = append(rep.Warnings, r.out.Warnings()...)
	for _, u := range rep.Unfinished {
		r.log.Warn().Str("path", u.Path).Int("fragments", u.Fragments).Msg("unfinished file")
	}
	return rep, nil
}

// processVolume loads one volume's identity then feeds its fragment records
// through the decoder and assembler. The returned error covers the header
// only; fragment-level problems are isolated per fragment.
func (r *Restorer) processVolume(headerPath string, rep *Report) error {
	data, err := readRecord(r.fs, headerPath)
	if err != nil {
		return err
	}
	hdr, err := DecodeVolumeHeader(data)
	if err != nil {
		return err
	}
	rep.Volumes++
	r.log.Info().
		Str("volume", headerPath).
		Uint16("sequence", hdr.Sequence).
		Bool("last", hdr.Last).
		Str("date", fmt.Sprintf("%04d-%02d-%02d", hdr.Year, hdr.Month, hdr.Day)).
		Msg("volume")
	for _, w := range hdr.Warnings {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("%s: %s", headerPath, w))
	}

	frags, err := volumeFragments(r.fs, headerPath)
	if err != nil {
		return err
	}
	for _, fp := range frags {
		raw, err := readRecord(r.fs, fp)
		if err != nil {
			// Unreadable record: treated like a corrupt fragment, not a
			// fatal condition for the volume.
			r.log.Warn().Str("record", fp).Err(err).Msg("skipping unreadable fragment record")
			rep.Skipped = append(rep.Skipped, fp)
			continue
		}
		r.processFragment(fp, DecodeFragment(raw), rep)
	}
	return nil
}

func (r *Restorer) processFragment(recordPath string, f *Fragment, rep *Report) {
	asm, outcome := r.asm.Add(f)
	switch outcome {
	case OutcomeSkipped:
		r.log.Warn().
			Str("record", recordPath).
			Str("path", f.Path).
			Strs("warnings", f.Warnings).
			Msg("skipping fragment")
		rep.Skipped = append(rep.Skipped, recordPath)
	case OutcomeDuplicate:
		r.log.Info().Str("record", recordPath).Str("path", f.Path).Msg("fragment for already completed file")
		rep.Duplicates = append(rep.Duplicates, f.Path)
	case OutcomePending:
		r.log.Debug().
			Str("path", f.Path).
			Uint16("sequence", f.Sequence).
			Bool("last", f.Last).
			Msg("fragment pending")
	case OutcomeCompleted:
		norm, err := r.out.Write(asm.Path, asm.Content)
		if err != nil {
			// Output IO failure is a run-level warning; reconstruction
			// state is already consistent.
			r.log.Error().Str("path", asm.Path).Err(err).Msg("write failed")
			rep.Warnings = append(rep.Warnings, err.Error())
			return
		}
		r.log.Debug().
			Str("path", norm).
			Int("parts", asm.Parts).
			Int("bytes", len(asm.Content)).
			Msg("wrote file")
		rep.FilesWritten++
		rep.BytesWritten += int64(len(asm.Content))
	}
}

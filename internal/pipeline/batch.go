package pipeline

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/EzequielZa/TUIA-PDI-TP1/internal/form"
	"github.com/EzequielZa/TUIA-PDI-TP1/internal/imaging"
	"golang.org/x/sync/errgroup"
)

// Source is one form to validate. Image is used when set; otherwise the
// scan is loaded from Path.
type Source struct {
	ID    string
	Path  string
	Image image.Image
}

func (s Source) load() (image.Image, error) {
	if s.Image != nil {
		return s.Image, nil
	}
	if s.Path == "" {
		return nil, fmt.Errorf("form %s: no image or path", s.ID)
	}
	img, err := imaging.LoadGray(s.Path)
	if err != nil {
		return nil, fmt.Errorf("form %s: %w", s.ID, err)
	}
	return img, nil
}

// RunBatch validates every source and returns table with one record per
// source appended in source order.
//
// Forms that fail are recorded with every field failed; they never abort the
// batch. With more than one configured worker, forms are processed in
// parallel and the records are still appended in source order.
//
// When ctx is cancelled RunBatch stops starting new forms and returns the
// table extended with the records of the leading sources that completed,
// along with ctx.Err().
func (p *Pipeline) RunBatch(ctx context.Context, table form.Table, sources []Source) (form.Table, error) {
	start := time.Now()
	p.logger.Info("batch started", "forms", len(sources), "workers", p.cfg.Workers)

	records := make([]form.Record, len(sources))
	done := make([]bool, len(sources))

	var err error
	if p.cfg.Workers <= 1 {
		for i, src := range sources {
			if err = ctx.Err(); err != nil {
				break
			}
			records[i] = p.processSource(src)
			done[i] = true
		}
	} else {
		var g errgroup.Group
		g.SetLimit(p.cfg.Workers)
		for i, src := range sources {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				records[i] = p.processSource(src)
				done[i] = true
				return nil
			})
		}
		err = g.Wait()
	}

	n := 0
	for n < len(done) && done[n] {
		n++
	}
	table = table.Append(records[:n]...)

	failed := 0
	for _, r := range records[:n] {
		if r.Err != nil {
			failed++
		}
	}
	p.logger.Info("batch finished", "forms", n, "failed", failed, "elapsed", time.Since(start))

	return table, err
}

func (p *Pipeline) processSource(src Source) form.Record {
	img, err := src.load()
	if err != nil {
		p.logger.Warn("form skipped", "form", src.ID, "error", err)
		rec := form.FailedRecord(src.ID, p.layout.FieldNames(), err)
		if p.hook != nil {
			p.hook(Inspection{ID: src.ID, Record: rec})
		}
		return rec
	}

	ins, err := p.Inspect(src.ID, img)
	if err != nil {
		p.logger.Warn("form failed", "form", src.ID, "error", err)
	} else {
		p.logger.Info("form validated", "form", src.ID, "passed", ins.Record.Passed())
	}
	if p.hook != nil {
		p.hook(ins)
	}
	return ins.Record
}

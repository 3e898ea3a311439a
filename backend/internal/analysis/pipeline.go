// Package analysis runs every step of the speech analysis over a loaded
// dataset and collects the outputs in one Result.
package analysis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"campaign-speeches/backend/internal/aggregate"
	"campaign-speeches/backend/internal/constants"
	"campaign-speeches/backend/internal/lexicon"
	"campaign-speeches/backend/internal/mention"
	"campaign-speeches/backend/internal/speaker"
	"campaign-speeches/backend/internal/speech"
	"campaign-speeches/backend/internal/textproc"
	"campaign-speeches/backend/internal/transcript"
	apperrors "campaign-speeches/backend/pkg/errors"
	"campaign-speeches/backend/pkg/logger"
)

// MaxConcurrentSummaries bounds the LLM calls in flight
const MaxConcurrentSummaries = 2

// Summarizer writes a one-sentence topic summary from a speaker's top words
type Summarizer interface {
	Summarize(ctx context.Context, speaker string, words []speech.Count) (string, error)
}

// Options configures a run
type Options struct {
	Lexicon  *lexicon.Lexicon // nil selects the embedded default
	TopN     int
	TopWords int

	// ExcludeSelfMentions zeroes the mention matrix diagonal
	ExcludeSelfMentions bool
	// SurnameMentions counts surname substrings instead of lexicon phrases
	SurnameMentions bool

	Summarizer Summarizer
	Logger     *zap.Logger
}

func (o *Options) defaults() error {
	if o.Lexicon == nil {
		lex, err := lexicon.Default()
		if err != nil {
			return err
		}
		o.Lexicon = lex
	}
	if o.TopN <= 0 {
		o.TopN = constants.DefaultTopN
	}
	if o.TopWords <= 0 {
		o.TopWords = constants.DefaultTopWords
	}
	if o.Logger == nil {
		o.Logger = logger.Named("analysis")
	}
	return nil
}

// Pipeline holds the components built from one lexicon
type Pipeline struct {
	opts      Options
	lex       *lexicon.Lexicon
	resolver  *speaker.Resolver
	segmenter *transcript.Segmenter
	locator   *aggregate.Locator
	counter   *mention.Counter
	logger    *zap.Logger
}

// New builds a Pipeline
func New(opts Options) (*Pipeline, error) {
	if err := opts.defaults(); err != nil {
		return nil, err
	}
	counter, err := mention.NewCounter(opts.Lexicon.MentionPatterns(), mention.Options{ExcludeSelf: opts.ExcludeSelfMentions})
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		opts:      opts,
		lex:       opts.Lexicon,
		resolver:  speaker.NewResolver(opts.Lexicon),
		segmenter: transcript.NewSegmenter(opts.Lexicon.IgnoredHeaders),
		locator:   aggregate.NewLocator(opts.Lexicon.States, opts.Lexicon.NewsChannels),
		counter:   counter,
		logger:    opts.Logger,
	}, nil
}

// Run analyzes speeches with a Pipeline built from opts
func Run(ctx context.Context, speeches []speech.Speech, opts Options) (*Result, error) {
	p, err := New(opts)
	if err != nil {
		return nil, err
	}
	return p.Run(ctx, speeches)
}

// Run analyzes speeches. Independent stages run concurrently; the first
// failing stage cancels the others.
func (p *Pipeline) Run(ctx context.Context, speeches []speech.Speech) (*Result, error) {
	if len(speeches) == 0 {
		return nil, apperrors.ErrAnalysisNoSpeeches
	}

	start := time.Now()
	res := &Result{
		RunID:         uuid.New().String(),
		CreatedAt:     start.UTC(),
		Speeches:      len(speeches),
		MissingValues: speech.MissingValues(speeches),
		TypeCounts:    speech.CountBy(speeches, speech.ByType),
	}
	res.DateFrom, res.DateTo = speech.DateRange(speeches)
	for _, s := range speeches {
		if !s.HasDate() {
			res.InvalidDates++
		}
	}

	log := p.logger.With(zap.String("run_id", res.RunID))
	log.Info("Starting analysis", zap.Int("speeches", len(speeches)))

	res.SpeakerCounts = p.resolver.Count(speeches)
	res.Top = speaker.Top(res.SpeakerCounts, p.opts.TopN)
	res.SharedCounts = p.resolver.CountShared(speeches, true, nil)
	log.Debug("Ranked speakers", zap.Strings("top", res.Top))

	res.Segments, res.DroppedBlocks = p.Segments(speeches)
	res.SegmentCount = len(res.Segments)
	res.Ambiguous = p.Inspect(speeches)
	res.MultipleTop = p.MultipleSpeakersTop(speeches, constants.TopLabelsAcrossMultiple)
	log.Debug("Segmented transcripts",
		zap.Int("segments", res.SegmentCount),
		zap.Int("dropped_blocks", res.DroppedBlocks),
	)

	rows := aggregate.Explode(speeches, p.resolver.Resolve)
	texts := textproc.Aggregate(res.Segments, res.Top)

	g, gctx := errgroup.WithContext(ctx)
	stage := func(name string, fn func()) {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return apperrors.NewAnalysisStageFailed(name, gctx.Err())
			default:
			}
			fn()
			log.Debug("Stage finished", zap.String("stage", name))
			return nil
		})
	}

	stage("weekly", func() {
		res.Weekly = aggregate.Weekly(rows, res.Top, p.lex.ChartOrder)
		res.WeeklyOthers = aggregate.WeeklyWithOthers(rows, res.Top, p.lex.ChartOrder, p.lex.IsPolitician)
		res.WeeklyParty = aggregate.WeeklyByParty(rows, res.Top, p.lex.Parties(), p.lex.Party)
	})
	stage("location", func() {
		res.PartyByState = p.locator.PartyByState(rows, res.Top, p.lex.Parties(), p.lex.Party)
		res.StateWinners = aggregate.Winners(res.PartyByState)
		res.ChannelByParty = p.locator.ChannelByParty(rows, res.Top, p.lex.Parties(), p.lex.Party)
		res.Unclassified = p.locator.Unclassified(rows, res.Top)
	})
	stage("words", func() {
		all := make([]string, len(res.Segments))
		for i, seg := range res.Segments {
			all[i] = seg.Text
		}
		res.Punctuation = textproc.Punctuation(all)
		res.TotalWords = textproc.TotalWords(texts)
		res.TopWords = make(map[string][]speech.Count, len(texts))
		for name, text := range texts {
			res.TopWords[name] = textproc.TopWords(textproc.WordCounts(text, p.lex.StopWordSet()), p.opts.TopWords)
		}
	})
	stage("mentions", func() {
		if p.opts.SurnameMentions {
			res.Mentions = mention.CountSurnames(texts, res.Top)
			return
		}
		res.Mentions = p.counter.Count(texts, res.Top)
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analysis %s: %w", res.RunID, err)
	}

	if p.opts.Summarizer != nil {
		res.Summaries = p.summarize(ctx, res)
	}

	log.Info("Analysis complete",
		zap.Strings("top", res.Top),
		zap.Int("segments", res.SegmentCount),
		zap.Duration("duration", time.Since(start)),
	)
	return res, nil
}

// summarize asks the Summarizer about every top speaker. Failures are
// logged and leave the speaker out.
func (p *Pipeline) summarize(ctx context.Context, res *Result) map[string]string {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(MaxConcurrentSummaries)

	var mu sync.Mutex
	out := make(map[string]string, len(res.Top))
	for _, name := range res.Top {
		name := name
		words := res.TopWords[name]
		if len(words) == 0 {
			continue
		}
		g.Go(func() error {
			summary, err := p.opts.Summarizer.Summarize(gctx, name, words)
			if err != nil {
				p.logger.Warn("Summary failed", zap.String("speaker", name), zap.Error(err))
				return nil
			}
			mu.Lock()
			out[name] = summary
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out
}

package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"resumetuner/internal/domain"
	"resumetuner/internal/resume"
	ai "resumetuner/pkg/ai"
	"resumetuner/pkg/ai/prompts"
)

// Processor runs the tailoring pipeline over a Generator.
type Processor struct {
	gen        ai.Generator
	stages     []Stage
	formatting Stage
	timeout    time.Duration
	log        *logrus.Entry
}

// NewProcessor builds a processor with the stages for set. A zero timeout
// leaves each call bounded only by ctx.
func NewProcessor(gen ai.Generator, set prompts.Set, timeout time.Duration, log *logrus.Entry) *Processor {
	if log == nil {
		log = logrus.WithField("component", "processor")
	}
	return &Processor{
		gen:        gen,
		stages:     Pipeline(set),
		formatting: FormattingStage(set),
		timeout:    timeout,
		log:        log,
	}
}

// Run executes every stage in order and returns the completed run. The
// first failing stage aborts the run and nothing partial is returned.
func (p *Processor) Run(ctx context.Context, resumeText, jobText string) (*domain.Run, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, domain.Invalid("resume text is empty")
	}
	if strings.TrimSpace(jobText) == "" {
		return nil, domain.Invalid("job description is empty")
	}

	run := domain.NewRun(resumeText, jobText)
	presence := resume.PresenceMap(resumeText)
	run.Presence = presence.Strings()
	run.Set(domain.FieldPresence, describePresence(presence))

	log := p.log.WithField("run_id", run.ID)
	log.WithField("presence", run.Presence).Info("tailoring run started")

	for i, st := range p.stages {
		if err := p.runStage(ctx, run, st, log.WithField("step", i+1)); err != nil {
			return nil, err
		}
	}

	log.WithField("duration", time.Since(run.StartedAt).String()).Info("tailoring run completed")
	return run, nil
}

// Format runs the formatting stage over a completed run using template as
// the style example and returns the formatted document.
func (p *Processor) Format(ctx context.Context, run *domain.Run, template string) (string, error) {
	if run == nil || run.Get(domain.FieldOptimizedResume) == "" {
		return "", domain.Invalid("nothing to format: the run has no optimized resume")
	}
	run.Set(domain.FieldTemplate, template)
	if err := p.runStage(ctx, run, p.formatting, p.log.WithField("run_id", run.ID)); err != nil {
		return "", err
	}
	return run.Final(), nil
}

func (p *Processor) runStage(ctx context.Context, run *domain.Run, st Stage, log *logrus.Entry) error {
	log = log.WithField("stage", st.Name)
	if err := ctx.Err(); err != nil {
		return domain.Fail(domain.ErrUpstreamGeneration, fmt.Sprintf("stage %s not started", st.Name), err)
	}

	callCtx := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := p.gen.Generate(callCtx, st.Instruction, buildInput(run, st.Inputs))
	if err != nil {
		log.WithError(err).Error("stage failed")
		return domain.Fail(domain.ErrUpstreamGeneration, fmt.Sprintf("stage %s failed", st.Name), err)
	}
	if strings.TrimSpace(out) == "" {
		if !st.AllowEmpty {
			log.Error("stage returned empty output")
			return domain.Fail(domain.ErrEmptyOutput, fmt.Sprintf("stage %s returned empty output", st.Name), nil)
		}
		out = ""
	}
	if st.Post != nil {
		out = st.Post(out, run)
	}
	run.Set(st.Output, out)

	log.WithFields(logrus.Fields{
		"duration":     time.Since(start).String(),
		"output_chars": len(out),
	}).Info("stage completed")
	return nil
}

package receipt

import (
	"bytes"
	"context"
	"os/exec"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/smartspend/smartspend/internal/config"
)

// Runner executes the OCR extractor over a receipt image on disk and
// returns its stdout and stderr.
type Runner interface {
	Run(ctx context.Context, imagePath string) (stdout []byte, stderr []byte, err error)
}

// CommandRunner shells out to the configured extractor script.
type CommandRunner struct {
	command string
	script  string
	timeout time.Duration
}

func NewCommandRunner(cfg config.Ocr) *CommandRunner {
	return &CommandRunner{
		command: cfg.Command,
		script:  cfg.Script,
		timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	}
}

func (r *CommandRunner) Run(ctx context.Context, imagePath string) ([]byte, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.command, r.script, imagePath)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Debugf("Running OCR extractor: %s %s", r.command, r.script)
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

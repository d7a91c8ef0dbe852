package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/zostay/go-mailmsg/internal/config"
	"github.com/zostay/go-mailmsg/internal/source"
	"github.com/zostay/go-mailmsg/message"
)

var format string

var assembleCmd = &cobra.Command{
	Use:   "assemble message",
	Short: "Shows the structured form of a single message",
	Args:  cobra.ExactArgs(1),
	RunE:  RunAssemble,
}

func init() {
	assembleCmd.Flags().StringVarP(&format, "format", "f", "", "output format: yaml, text, or mime")
	rootCmd.AddCommand(assembleCmd)
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromFile(configPath)
	}
	return config.Load()
}

func RunAssemble(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if format != "" {
		cfg.Format = format
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	level, err := cfg.Level()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	hdr, parts, err := source.Split(raw)
	if err != nil {
		logger.Warn("message structure only partly read", "path", args[0], "error", err)
	}

	m := message.Assemble(hdr, parts,
		message.WithLogger(logger),
		message.WithFilenameGenerator(message.RandomFilename(cfg.AttachmentPrefix)),
	)

	return render(cmd.OutOrStdout(), cfg.Format, m)
}

func render(w io.Writer, format string, m *message.Message) error {
	switch format {
	case config.FormatText:
		return renderText(w, m)
	case config.FormatMIME:
		_, err := m.WriteTo(w)
		return err
	default:
		return renderYAML(w, m)
	}
}

func renderText(w io.Writer, m *message.Message) error {
	v := newView(m)

	lines := []struct {
		label string
		value any
	}{
		{"Subject", fmt.Sprintf("%s (%s)", v.Subject, v.SubjectCharset)},
		{"Priority", v.Priority},
		{"From", v.From},
		{"Sender", v.Sender},
		{"To", v.To},
		{"Cc", v.Cc},
		{"Bcc", v.Bcc},
		{"Reply-To", v.ReplyTo},
		{"Date", v.Date},
		{"Message-ID", v.MessageID},
	}

	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "%-10s %v\n", l.label+":", l.value); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "\n[body %s html=%t]\n%s\n", v.BodyCharset, v.IsBodyHTML, v.Body); err != nil {
		return err
	}

	for _, a := range v.Attachments {
		if _, err := fmt.Fprintf(w, "[attachment %s %s %d bytes cid=%s]\n", a.Filename, a.ContentType, a.Size, a.ContentID); err != nil {
			return err
		}
	}

	for _, av := range v.AlternateViews {
		if _, err := fmt.Fprintf(w, "[alternate %s %d bytes cid=%s]\n", av.ContentType, av.Size, av.ContentID); err != nil {
			return err
		}
	}

	return nil
}

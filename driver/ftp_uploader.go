package driver

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"sync"
	"time"

	"github.com/jlaffaye/ftp"

	"github.com/Yaz-U/ai-news-daily/config"
	"github.com/Yaz-U/ai-news-daily/domain"
)

// ftpConn is the subset of *ftp.ServerConn the uploader uses.
type ftpConn interface {
	Login(user, password string) error
	ChangeDir(path string) error
	Stor(path string, r io.Reader) error
	Quit() error
}

type ftpDialer func(ctx context.Context, cfg config.FTPConfig) (ftpConn, error)

// FTPUploader pushes one file per call over an authenticated FTP session.
type FTPUploader struct {
	cfg    config.FTPConfig
	dial   ftpDialer
	logger *slog.Logger
}

func NewFTPUploader(cfg config.FTPConfig, logger *slog.Logger) *FTPUploader {
	return &FTPUploader{
		cfg:    cfg,
		dial:   dialFTP,
		logger: logger,
	}
}

func dialFTP(ctx context.Context, cfg config.FTPConfig) (ftpConn, error) {
	// EPSV disabled forces PASV, which NAT'd shared hosts handle best
	return ftp.Dial(cfg.Addr(),
		ftp.DialWithContext(ctx),
		ftp.DialWithTimeout(cfg.Timeout),
		ftp.DialWithDisabledEPSV(cfg.DisableEPSV),
	)
}

// Configured reports whether host, user and password are all set.
func (u *FTPUploader) Configured() bool {
	return u.cfg.Configured()
}

// Upload stores r as name inside the configured remote directory. The whole
// session is bounded by the configured timeout.
func (u *FTPUploader) Upload(ctx context.Context, name string, r io.Reader) error {
	ctx, cancel := context.WithTimeout(ctx, u.cfg.Timeout)
	defer cancel()

	start := time.Now()
	done := make(chan error, 1)
	go func() {
		done <- u.session(ctx, name, r)
	}()

	select {
	case err := <-done:
		if err != nil && ctx.Err() != nil {
			return fmt.Errorf("%w: ftp session: %w", domain.ErrPublish, ctx.Err())
		}
		if err != nil {
			return err
		}
	case <-ctx.Done():
		return fmt.Errorf("%w: ftp session: %w", domain.ErrPublish, ctx.Err())
	}

	u.logger.Info("ftp upload completed",
		"host", u.cfg.Host,
		"remote_path", path.Join(u.cfg.RemotePath, name),
		"duration_ms", time.Since(start).Milliseconds())
	return nil
}

func (u *FTPUploader) session(ctx context.Context, name string, r io.Reader) error {
	conn, err := u.dial(ctx, u.cfg)
	if err != nil {
		return fmt.Errorf("%w: dial %s: %w", domain.ErrPublish, u.cfg.Addr(), err)
	}
	var once sync.Once
	quit := func() {
		once.Do(func() {
			if qerr := conn.Quit(); qerr != nil {
				u.logger.Debug("ftp quit failed", "error", qerr)
			}
		})
	}
	// closing the connection unblocks a transfer stuck past the deadline
	stop := context.AfterFunc(ctx, quit)
	defer func() {
		stop()
		quit()
	}()

	if err := conn.Login(u.cfg.User, u.cfg.Password); err != nil {
		return fmt.Errorf("%w: login: %w", domain.ErrPublish, err)
	}
	u.logger.Info("ftp login succeeded", "host", u.cfg.Host, "remote_path", u.cfg.RemotePath)

	if u.cfg.RemotePath != "" {
		if err := conn.ChangeDir(u.cfg.RemotePath); err != nil {
			return fmt.Errorf("%w: cwd %s: %w", domain.ErrPublish, u.cfg.RemotePath, err)
		}
	}

	if err := conn.Stor(name, r); err != nil {
		return fmt.Errorf("%w: stor %s: %w", domain.ErrPublish, name, err)
	}
	return nil
}

package infrastructure

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"

	"tempwatch-v0/internal/ingest/domain"
)

const dialTimeout = 15 * time.Second

// SFTPRetriever implements the domain Retriever interface over one SSH
// session per fetch. The remote sampler keeps appending while we read; the
// snapshot is whatever the file held at read time, no locking.
type SFTPRetriever struct {
	addr       string
	user       string
	keyPath    string
	remotePath string
}

// NewSFTPRetriever creates a retriever for the given dial target and remote path
func NewSFTPRetriever(addr, user, keyPath, remotePath string) *SFTPRetriever {
	return &SFTPRetriever{
		addr:       addr,
		user:       user,
		keyPath:    keyPath,
		remotePath: remotePath,
	}
}

// Fetch dials, authenticates, reads the whole remote file and closes the
// session. Transport and auth failures come back as ConnectionError, file
// failures as RemoteFileError. No retries: one attempt per run.
func (r *SFTPRetriever) Fetch(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &domain.ConnectionError{Host: r.addr, Err: err}
	}

	clientCfg, err := r.clientConfig()
	if err != nil {
		return "", &domain.ConnectionError{Host: r.addr, Err: err}
	}

	sshClient, err := ssh.Dial("tcp", r.addr, clientCfg)
	if err != nil {
		return "", &domain.ConnectionError{Host: r.addr, Err: err}
	}
	defer sshClient.Close()

	sftpClient, err := sftp.NewClient(sshClient)
	if err != nil {
		return "", &domain.ConnectionError{Host: r.addr, Err: fmt.Errorf("sftp subsystem: %w", err)}
	}
	defer sftpClient.Close()

	remoteFile, err := sftpClient.Open(r.remotePath)
	if err != nil {
		return "", &domain.RemoteFileError{Path: r.remotePath, Err: err}
	}
	defer remoteFile.Close()

	contents, err := io.ReadAll(remoteFile)
	if err != nil {
		return "", &domain.RemoteFileError{Path: r.remotePath, Err: err}
	}

	if len(contents) == 0 {
		return "", &domain.RemoteFileError{Path: r.remotePath, Err: fmt.Errorf("file is empty")}
	}

	return string(contents), nil
}

func (r *SFTPRetriever) clientConfig() (*ssh.ClientConfig, error) {
	key, err := os.ReadFile(r.keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key: %w", err)
	}

	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	return &ssh.ClientConfig{
		User: r.user,
		Auth: []ssh.AuthMethod{
			ssh.PublicKeys(signer),
		},
		// Single pre-configured target; first-connect trust like the
		// sampler's own provisioning
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         dialTimeout,
	}, nil
}

// Package certs generates and caches the self-signed TLS certificate the
// development server presents when serving HTTPS on localhost.
package certs

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"time"
)

const certValidity = 365 * 24 * time.Hour

// Provider creates and reuses a localhost server certificate stored on disk.
type Provider struct {
	certDir  string
	certFile string
	keyFile  string
}

// NewProvider returns a Provider keeping its certificate files under certDir.
func NewProvider(certDir string) *Provider {
	return &Provider{
		certDir:  certDir,
		certFile: filepath.Join(certDir, "investd.crt"),
		keyFile:  filepath.Join(certDir, "investd.key"),
	}
}

// GetOrCreateCertificate returns the cached certificate when it is still
// valid for localhost and generates a fresh one otherwise. Unreadable or
// expired files are replaced rather than reported.
func (p *Provider) GetOrCreateCertificate() (tls.Certificate, error) {
	exists, err := p.CertificateExists()
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("failed to check certificate existence: %w", err)
	}
	if exists {
		cert, err := tls.LoadX509KeyPair(p.certFile, p.keyFile)
		if err == nil {
			if verifyErr := verifyCertificate(cert); verifyErr == nil {
				return cert, nil
			}
		}
		if err := p.removeCertificates(); err != nil {
			return tls.Certificate{}, fmt.Errorf("failed to remove stale certificate files: %w", err)
		}
	}

	return p.generateCertificate()
}

// CertificateExists reports whether both the certificate and key files exist.
func (p *Provider) CertificateExists() (bool, error) {
	for _, file := range []string{p.certFile, p.keyFile} {
		if _, err := os.Stat(file); err != nil {
			if os.IsNotExist(err) {
				return false, nil
			}
			return false, fmt.Errorf("failed to check certificate file: %w", err)
		}
	}
	return true, nil
}

// generateCertificate creates a self-signed ECDSA certificate for localhost
// and writes both halves to disk with owner-only permissions.
func (p *Provider) generateCertificate() (tls.Certificate, error) {
	if err := os.MkdirAll(p.certDir, 0700); err != nil {
		return tls.Certificate{}, fmt.Errorf("failed to create certificate directory: %w", err)
	}

	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("failed to generate private key: %w", err)
	}

	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 62))
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("failed to generate serial number: %w", err)
	}

	template := x509.Certificate{
		SerialNumber: serial,
		Subject: pkix.Name{
			Organization: []string{"investd development server"},
		},
		NotBefore:             time.Now(),
		NotAfter:              time.Now().Add(certValidity),
		KeyUsage:              x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		IPAddresses: []net.IP{
			net.IPv4(127, 0, 0, 1),
			net.IPv6loopback,
		},
		DNSNames: []string{"localhost"},
	}

	certDER, err := x509.CreateCertificate(rand.Reader, &template, &template, &priv.PublicKey, priv)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("failed to create certificate: %w", err)
	}

	if err := writePEM(p.certFile, "CERTIFICATE", certDER); err != nil {
		return tls.Certificate{}, err
	}

	keyDER, err := x509.MarshalECPrivateKey(priv)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("failed to marshal private key: %w", err)
	}
	if err := writePEM(p.keyFile, "EC PRIVATE KEY", keyDER); err != nil {
		return tls.Certificate{}, err
	}

	return tls.LoadX509KeyPair(p.certFile, p.keyFile)
}

func writePEM(path, blockType string, der []byte) error {
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open %s for writing: %w", filepath.Base(path), err)
	}
	defer func() { _ = out.Close() }()

	if err := pem.Encode(out, &pem.Block{Type: blockType, Bytes: der}); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// verifyCertificate checks the certificate parses, is within its validity
// window and covers localhost.
func verifyCertificate(cert tls.Certificate) error {
	if len(cert.Certificate) == 0 {
		return fmt.Errorf("no certificates found")
	}

	x509Cert, err := x509.ParseCertificate(cert.Certificate[0])
	if err != nil {
		return fmt.Errorf("failed to parse certificate: %w", err)
	}

	now := time.Now()
	if now.Before(x509Cert.NotBefore) {
		return fmt.Errorf("certificate not yet valid")
	}
	if now.After(x509Cert.NotAfter) {
		return fmt.Errorf("certificate has expired")
	}

	if err := x509Cert.VerifyHostname("localhost"); err != nil {
		return fmt.Errorf("certificate not valid for localhost: %w", err)
	}

	return nil
}

// removeCertificates deletes both certificate files, tolerating absence.
func (p *Provider) removeCertificates() error {
	for _, file := range []string{p.certFile, p.keyFile} {
		if err := os.Remove(file); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", filepath.Base(file), err)
		}
	}
	return nil
}

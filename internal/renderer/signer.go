package renderer

import (
	"bytes"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	digitorus_pdf "github.com/digitorus/pdf"
	"github.com/digitorus/pdfsign/sign"
	"github.com/proofdeck/proofdeck-api/common"
)

// DocumentSigner optionally applies a PAdES digital signature to
// finished documents. When signing is disabled or fails, the unsigned
// PDF is still served; a missing signature is never a render failure.
type DocumentSigner struct {
	certificate *x509.Certificate
	privateKey  *rsa.PrivateKey
	enabled     bool
}

func NewDocumentSigner() (*DocumentSigner, error) {
	if common.Config.SigningEnabled == nil || !*common.Config.SigningEnabled {
		slog.Info("PDF signing disabled in configuration")
		return &DocumentSigner{enabled: false}, nil
	}

	if common.Config.SigningCertPath == nil || common.Config.SigningKeyPath == nil {
		return nil, fmt.Errorf("signing enabled but certificate or key path not configured")
	}

	certificate, err := loadCertificate(*common.Config.SigningCertPath)
	if err != nil {
		return nil, err
	}
	privateKey, err := loadPrivateKey(*common.Config.SigningKeyPath)
	if err != nil {
		return nil, err
	}

	slog.Info("Document signer initialized",
		"cert_subject", certificate.Subject.String(),
		"cert_expiry", certificate.NotAfter)

	return &DocumentSigner{
		certificate: certificate,
		privateKey:  privateKey,
		enabled:     true,
	}, nil
}

func loadCertificate(path string) (*x509.Certificate, error) {
	certPEM, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read certificate file %s: %w", path, err)
	}

	block, _ := pem.Decode(certPEM)
	if block == nil {
		return nil, fmt.Errorf("failed to decode certificate PEM from %s", path)
	}

	certificate, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse certificate: %w", err)
	}
	return certificate, nil
}

func loadPrivateKey(path string) (*rsa.PrivateKey, error) {
	keyPEM, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key file %s: %w", path, err)
	}

	block, _ := pem.Decode(keyPEM)
	if block == nil {
		return nil, fmt.Errorf("failed to decode private key PEM from %s", path)
	}

	privateKey, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		// Try PKCS8 format as fallback
		key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("failed to parse private key: %w", err)
		}
		var ok bool
		privateKey, ok = key.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("private key is not RSA format")
		}
	}
	return privateKey, nil
}

func (s *DocumentSigner) IsEnabled() bool {
	return s != nil && s.enabled
}

// Sign applies the digital signature. On any failure, the original
// bytes come back with a nil error so delivery is never blocked.
func (s *DocumentSigner) Sign(pdfBytes []byte, certID, verificationID string) ([]byte, error) {
	if !s.IsEnabled() {
		return pdfBytes, nil
	}
	if len(pdfBytes) == 0 {
		return pdfBytes, fmt.Errorf("empty PDF bytes")
	}

	signData := sign.SignData{
		Signature: sign.SignDataSignature{
			Info: sign.SignDataSignatureInfo{
				Name:     "ProofDeck",
				Location: "Digital Credential Platform",
				Reason:   fmt.Sprintf("Credential authenticity for verification %s", verificationID),
				Date:     time.Now(),
			},
			CertType:   sign.CertificationSignature,
			DocMDPPerm: sign.AllowFillingExistingFormFieldsAndSignaturesPerms,
		},
		Signer:      s.privateKey,
		Certificate: s.certificate,
	}

	inputReader := bytes.NewReader(pdfBytes)
	var outputBuffer bytes.Buffer

	// sign.Sign has panicked on malformed input before, so the whole
	// attempt is fenced off.
	var signingError error
	func() {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("Panic occurred during PDF signing",
					"panic", r,
					"cert_id", certID)
				signingError = fmt.Errorf("signing panicked: %v", r)
			}
		}()

		pdfReader, err := digitorus_pdf.NewReader(inputReader, int64(len(pdfBytes)))
		if err != nil {
			signingError = fmt.Errorf("failed to open document for signing: %w", err)
			return
		}
		inputReader.Seek(0, io.SeekStart)

		signingError = sign.Sign(inputReader, &outputBuffer, pdfReader, int64(len(pdfBytes)), signData)
	}()

	if signingError != nil || outputBuffer.Len() == 0 {
		slog.Warn("PDF signing failed, returning unsigned document",
			"cert_id", certID,
			"error", signingError)
		return pdfBytes, nil
	}

	slog.Info("PDF signed",
		"cert_id", certID,
		"original_size", len(pdfBytes),
		"signed_size", outputBuffer.Len())
	return outputBuffer.Bytes(), nil
}

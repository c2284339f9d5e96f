package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses server configuration flags from args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-f binary data directory for the "fs" files backend
//	-files-backend files backend: db, fs or minio
//	-max-upload-size upload size limit in bytes
//	-minio-endpoint, -minio-bucket object storage settings
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token lifetime (e.g., "24h")
//	-request-timeout request timeout (e.g., "30s")
//	-hash-key upload integrity hash key
//	-allow-admin-signup allow registering admin accounts
//	-log-level zerolog level
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("sheet-viz", flag.ContinueOnError)

	var serverAddress NetAddress
	var (
		fileStoragePath, filesBackend, databaseDSN, jsonConfigPath string
		tokenSignKey, tokenIssuer, hashKey, logLevel               string
		minioEndpoint, minioBucket                                 string
		tokenDuration, requestTimeout                              time.Duration
		maxUploadSize                                              int64
		allowAdminSignup                                           bool
	)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&fileStoragePath, "f", "", "Binary data directory")
	fs.StringVar(&filesBackend, "files-backend", "", "Files backend: db, fs or minio")
	fs.Int64Var(&maxUploadSize, "max-upload-size", 0, "Upload size limit in bytes")
	fs.StringVar(&minioEndpoint, "minio-endpoint", "", "MinIO endpoint host:port")
	fs.StringVar(&minioBucket, "minio-bucket", "", "MinIO bucket")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Token lifetime (e.g., 24h)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&hashKey, "hash-key", "", "Upload integrity hash key")
	fs.BoolVar(&allowAdminSignup, "allow-admin-signup", false, "Allow registering admin accounts")
	fs.StringVar(&logLevel, "log-level", "", "Log level")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:     tokenSignKey,
			TokenIssuer:      tokenIssuer,
			TokenDuration:    tokenDuration,
			HashKey:          hashKey,
			AllowAdminSignup: allowAdminSignup,
			LogLevel:         logLevel,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
			Files: Files{
				Backend:       filesBackend,
				BinaryDataDir: fileStoragePath,
				MaxUploadSize: maxUploadSize,
			},
			MinIO: MinIO{
				Endpoint: minioEndpoint,
				Bucket:   minioBucket,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// An empty host means all interfaces. Other hosts must be "localhost" or an IP.
func (a *NetAddress) Set(s string) error {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "" && !strings.EqualFold(host, "localhost") && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}

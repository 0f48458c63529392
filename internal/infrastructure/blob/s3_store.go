package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	appstock "github.com/jhoicas/stock-intake/internal/application/stock"
)

// S3Config parámetros del bucket. Endpoint vacío = AWS real; con Endpoint se usa path-style (MinIO, R2).
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	Prefix    string
	PublicURL string
	PublicACL bool
}

// S3Store implementa BlobStore sobre S3 o un servicio compatible.
type S3Store struct {
	client    *s3.Client
	bucket    string
	prefix    string
	baseURL   string
	publicACL bool
}

var _ appstock.BlobStore = (*S3Store)(nil)

// NewS3Store crea el cliente a partir de la cadena de credenciales por defecto,
// o de credenciales estáticas si AccessKey y SecretKey vienen configuradas.
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, errors.New("blob/s3: bucket requerido")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("blob/s3: load aws config: %w", err)
	}

	endpoint := strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")
	clientOpts := []func(*s3.Options){}
	if endpoint != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		})
	}

	return &S3Store{
		client:    s3.NewFromConfig(awsCfg, clientOpts...),
		bucket:    cfg.Bucket,
		prefix:    strings.Trim(strings.TrimSpace(cfg.Prefix), "/"),
		baseURL:   publicBaseURL(cfg.PublicURL, endpoint, cfg.Bucket, awsCfg.Region),
		publicACL: cfg.PublicACL,
	}, nil
}

// Put sube la imagen bajo <prefix>/<uuid>_<nombre> y devuelve su URL pública.
func (s *S3Store) Put(ctx context.Context, fileName, contentType string, body io.Reader, size int64) (string, error) {
	key := NewObjectKey(fileName)
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// El SDK necesita un cuerpo con Seek para firmar el payload sobre endpoints sin TLS;
	// el tamaño ya viene acotado por el límite de body del servidor.
	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if size > 0 && int64(len(data)) != size {
		return "", fmt.Errorf("tamaño inconsistente: declarado %d, leído %d", size, len(data))
	}

	objectKey := applyPrefix(s.prefix, key)
	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(ResolveContentType(fileName, contentType, sniffHead(data))),
	}
	if s.publicACL {
		input.ACL = s3types.ObjectCannedACLPublicRead
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("s3 put object bucket=%s key=%s: %w", s.bucket, objectKey, err)
	}
	return s.baseURL + "/" + objectKey, nil
}

// publicBaseURL resuelve la base de las URLs devueltas: PublicURL explícita (CDN),
// endpoint compatible en path-style, o el host virtual de AWS.
func publicBaseURL(publicURL, endpoint, bucket, region string) string {
	if u := strings.TrimRight(strings.TrimSpace(publicURL), "/"); u != "" {
		return u
	}
	if endpoint != "" {
		return strings.TrimRight(endpoint, "/") + "/" + bucket
	}
	if region == "" {
		region = "us-east-1"
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
}

func sniffHead(data []byte) []byte {
	if len(data) > 512 {
		return data[:512]
	}
	return data
}

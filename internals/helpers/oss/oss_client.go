package oss

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"log"
	"math"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

type OSSService struct {
	Client     *oss.Client
	Bucket     *oss.Bucket
	Endpoint   string
	BucketName string
	Prefix     string
}

func getEnv(k string) string { return strings.TrimSpace(os.Getenv(k)) }

func NewOSSServiceFromEnv(prefix string) (*OSSService, error) {
	endpoint := getEnv("ALI_OSS_ENDPOINT")
	ak := getEnv("ALI_OSS_ACCESS_KEY")
	sk := getEnv("ALI_OSS_SECRET_KEY")
	bucketName := getEnv("ALI_OSS_BUCKET")
	if endpoint == "" || ak == "" || sk == "" || bucketName == "" {
		return nil, fmt.Errorf("missing env: ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET")
	}

	client, err := oss.New(endpoint, ak, sk)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}

	bkt, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	if loc, err := client.GetBucketLocation(bucketName); err != nil {
		if se, ok := err.(oss.ServiceError); ok && se.StatusCode == 403 && se.Code == "AccessDenied" {
			log.Printf("[OSS] warn: skip location check due to AccessDenied (bucket=%s). Continuing.", bucketName)
		} else {
			return nil, fmt.Errorf("verify bucket: %w", err)
		}
	} else {
		log.Printf("[OSS] bucket %s location: %s", bucketName, loc)
	}

	return &OSSService{
		Client:     client,
		Bucket:     bkt,
		Endpoint:   endpoint,
		BucketName: bucketName,
		Prefix:     strings.Trim(prefix, "/"),
	}, nil
}

/* =======================================================================
   Decode / resize / encode
======================================================================= */

func decodeImage(all []byte, filename string) (image.Image, error) {
	if len(all) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	head := all
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)

	var (
		img image.Image
		err error
	)
	switch {
	case strings.Contains(ct, "jpeg"):
		img, err = jpeg.Decode(bytes.NewReader(all))
	case strings.Contains(ct, "png"):
		img, err = png.Decode(bytes.NewReader(all))
	case strings.Contains(ct, "webp"):
		img, err = webp.Decode(bytes.NewReader(all))
	default:
		ext := strings.ToLower(filepath.Ext(filename))
		switch ext {
		case ".jpg", ".jpeg":
			img, err = jpeg.Decode(bytes.NewReader(all))
		case ".png":
			img, err = png.Decode(bytes.NewReader(all))
		case ".webp":
			img, err = webp.Decode(bytes.NewReader(all))
		default:
			return nil, fmt.Errorf("unsupported format: %s / %s", ct, ext)
		}
	}
	return img, err
}

// downscaleIfNeeded keeps aspect ratio, CatmullRom for quality.
func downscaleIfNeeded(src image.Image, maxW, maxH int) image.Image {
	if maxW <= 0 && maxH <= 0 {
		return src
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if (maxW > 0 && w > maxW) || (maxH > 0 && h > maxH) {
		scale := 1.0
		if maxW > 0 {
			scale = math.Min(scale, float64(maxW)/float64(w))
		}
		if maxH > 0 {
			scale = math.Min(scale, float64(maxH)/float64(h))
		}
		nw := int(math.Round(float64(w) * scale))
		nh := int(math.Round(float64(h) * scale))
		if nw < 1 {
			nw = 1
		}
		if nh < 1 {
			nh = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
		return dst
	}
	return src
}

func encodeToWebP(img image.Image, quality float32) ([]byte, error) {
	if quality <= 0 {
		quality = 80
	}
	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

/* =======================================================================
   Upload helpers
======================================================================= */

// UploadAsWebP re-encodes the multipart image to webp (downscaled to
// 1600px) and uploads it under keyPrefix. Returns the public URL.
func (s *OSSService) UploadAsWebP(ctx context.Context, fh *multipart.FileHeader, keyPrefix string) (string, error) {
	all, err := readAll(fh)
	if err != nil {
		return "", err
	}
	img, err := decodeImage(all, fh.Filename)
	if err != nil {
		return "", err
	}
	img = downscaleIfNeeded(img, 1600, 1600)

	out, err := encodeToWebP(img, 80)
	if err != nil {
		return "", err
	}
	key := s.buildObjectKey(keyPrefix, fh.Filename)
	if err := s.putObject(ctx, key, bytes.NewReader(out), "image/webp"); err != nil {
		return "", err
	}
	return s.PublicURL(key), nil
}

// UploadAvatarWebP square-crops to size×size before the webp encode.
func (s *OSSService) UploadAvatarWebP(ctx context.Context, fh *multipart.FileHeader, keyPrefix string, size int) (string, error) {
	if size <= 0 {
		size = 512
	}
	all, err := readAll(fh)
	if err != nil {
		return "", err
	}
	img, err := decodeImage(all, fh.Filename)
	if err != nil {
		return "", err
	}
	img = imaging.Fill(img, size, size, imaging.Center, imaging.CatmullRom)

	out, err := encodeToWebP(img, 85)
	if err != nil {
		return "", err
	}
	key := s.buildObjectKey(keyPrefix, fh.Filename)
	if err := s.putObject(ctx, key, bytes.NewReader(out), "image/webp"); err != nil {
		return "", err
	}
	return s.PublicURL(key), nil
}

func (s *OSSService) putObject(ctx context.Context, key string, r io.Reader, contentType string) error {
	_ = ctx // aliyun sdk has no ctx variant on PutObject
	return s.Bucket.PutObject(key, r,
		oss.ContentType(contentType),
		oss.ContentDisposition("inline"),
		oss.CacheControl("public, max-age=31536000, immutable"),
	)
}

func (s *OSSService) DeleteObject(ctx context.Context, key string) error {
	_ = ctx
	return s.Bucket.DeleteObject(key)
}

func (s *OSSService) PublicURL(key string) string {
	ep := strings.TrimPrefix(strings.TrimPrefix(s.Endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.BucketName, ep, key)
}

/* =======================================================================
   Key building
======================================================================= */

func (s *OSSService) buildObjectKey(dir, filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	name := fmt.Sprintf("%s-%d-%s.webp", slugify(base), time.Now().Unix(), randHex(4))
	parts := []string{}
	if s.Prefix != "" {
		parts = append(parts, s.Prefix)
	}
	if d := strings.Trim(dir, "/"); d != "" {
		parts = append(parts, d)
	}
	parts = append(parts, name)
	return strings.Join(parts, "/")
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		s = "file"
	}
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}

func randHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}

func readAll(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

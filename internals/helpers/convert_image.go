package helper

import (
	"fmt"
	_ "image/jpeg"
	_ "image/png"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

var filenameSanitizer = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

func sanitizeFilename(filename string) string {
	return filenameSanitizer.ReplaceAllString(strings.TrimSpace(filename), "_")
}

// GenerateUniqueFilename prefixa com UUID para evitar colisão.
func GenerateUniqueFilename(name string) string {
	return uuid.NewString() + "_" + sanitizeFilename(name)
}

// SaveImageAsWebp decodifica o upload (jpeg/png), redimensiona para no máximo
// 1280px de largura e grava em webp no diretório destino. Devolve o caminho salvo.
func SaveImageAsWebp(fileHeader *multipart.FileHeader, destDir string) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("falha ao abrir o arquivo de imagem: %w", err)
	}
	defer src.Close()

	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("falha ao decodificar imagem: %w", err)
	}

	if img.Bounds().Dx() > 1280 {
		img = imaging.Resize(img, 1280, 0, imaging.Lanczos)
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("falha ao criar diretório %s: %w", destDir, err)
	}

	base := GenerateUniqueFilename(fileHeader.Filename)
	base = strings.TrimSuffix(base, filepath.Ext(base)) + ".webp"
	destPath := filepath.Join(destDir, base)

	out, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("falha ao criar arquivo %s: %w", destPath, err)
	}
	defer out.Close()

	if err := webp.Encode(out, img, &webp.Options{Quality: 85}); err != nil {
		return "", fmt.Errorf("falha ao converter para webp: %w", err)
	}
	return destPath, nil
}

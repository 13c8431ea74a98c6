package rendering

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amgrenovation/ops-dashboard/internal/httperr"
	"github.com/amgrenovation/ops-dashboard/internal/models"
	"github.com/amgrenovation/ops-dashboard/internal/storage"
	"github.com/amgrenovation/ops-dashboard/internal/testutil"
	"github.com/amgrenovation/ops-dashboard/internal/webhook"
)

func samplePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for x := 0; x < 40; x++ {
		for y := 0; y < 20; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 6), G: 120, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestGenerate(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	store := storage.NewMemoryStore("https://cdn.example.com")
	sender := &testutil.FakeSender{Body: map[string]string{"resultImage": "https://ai.example.com/out.webp"}}

	uc := NewGenerate(db, store, sender, nil, nil)
	res, err := uc.Execute(ctx, GenerateInput{
		Image:  samplePNG(t),
		Prompt: "Cuisine moderne",
		Hooks:  testutil.Hooks("https://n8n.example.com"),
	})
	require.NoError(t, err)
	assert.Empty(t, res.Warning)
	assert.Equal(t, "https://ai.example.com/out.webp", res.Rendering.GeneratedImageURL)
	assert.Contains(t, res.Rendering.OriginalImageURL, "https://cdn.example.com/renderings/")
	assert.Equal(t, 1, store.Len())

	req := sender.Calls()[0].Payload.(webhook.RenderRequest)
	raw, err := base64.StdEncoding.DecodeString(req.Image)
	require.NoError(t, err)
	assert.Equal(t, "RIFF", string(raw[:4]))
	assert.Equal(t, models.DefaultCompanyName, req.CompanyName)

	var count int64
	db.Model(&models.AIRendering{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestGenerate_NoImageReturned(t *testing.T) {
	uc := NewGenerate(testutil.NewDB(t), storage.NewMemoryStore("https://cdn.example.com"), &testutil.FakeSender{}, nil, nil)

	res, err := uc.Execute(context.Background(), GenerateInput{
		Image:  samplePNG(t),
		Prompt: "Salle de bain",
		Hooks:  testutil.Hooks("https://n8n.example.com"),
	})
	require.NoError(t, err)
	assert.Equal(t, NoImageWarning, res.Warning)
	assert.Equal(t, res.Rendering.OriginalImageURL, res.Rendering.GeneratedImageURL)
}

func TestGenerate_Failures(t *testing.T) {
	ctx := context.Background()
	hooks := testutil.Hooks("https://n8n.example.com")
	db := testutil.NewDB(t)

	uc := NewGenerate(db, storage.Disabled{}, &testutil.FakeSender{}, nil, nil)
	_, err := uc.Execute(ctx, GenerateInput{Image: samplePNG(t), Prompt: "x"})
	assert.True(t, httperr.IsBusiness(err, "webhook_not_configured"))

	_, err = uc.Execute(ctx, GenerateInput{Image: samplePNG(t), Hooks: hooks})
	assert.True(t, httperr.IsBusiness(err, "prompt_required"))

	_, err = uc.Execute(ctx, GenerateInput{Image: []byte("not an image"), Prompt: "x", Hooks: hooks})
	assert.True(t, httperr.IsBusiness(err, "unsupported_image"))

	failing := NewGenerate(db, storage.Disabled{}, &testutil.FakeSender{Fail: true}, nil, nil)
	_, err = failing.Execute(ctx, GenerateInput{Image: samplePNG(t), Prompt: "x", Hooks: hooks})
	var up httperr.UpstreamError
	assert.ErrorAs(t, err, &up)
}

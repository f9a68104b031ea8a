package bykebiten

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"log/slog"
	"path"
	"reflect"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// AssetFS is the file system assets are loaded from.
type AssetFS struct {
	fs.FS
}

// MakeAssetFS uses the "assets" directory within root as AssetFS.
func MakeAssetFS(root fs.FS) AssetFS {
	sub, _ := fs.Sub(root, "assets")
	return AssetFS{FS: sub}
}

// Assets loads files from the AssetFS in the background. Every path is loaded only once.
type Assets struct {
	fs fs.FS

	images *assetCache[*ebiten.Image]
	bytes  *assetCache[[]byte]
}

// MakeAssets creates an Assets resource loading from fs. The GamePlugin inserts
// one reading from the AssetFS resource.
func MakeAssets(fs fs.FS) Assets {
	return Assets{
		fs:     fs,
		images: &assetCache[*ebiten.Image]{},
		bytes:  &assetCache[[]byte]{},
	}
}

func (a *Assets) Bytes(path string) AsyncAsset[[]byte] {
	return a.bytes.Get(path, func() ([]byte, error) {
		return fs.ReadFile(a.fs, path)
	})
}

// Image decodes a png or jpeg image.
func (a *Assets) Image(path string) AsyncAsset[*ebiten.Image] {
	return a.images.Get(path, func() (*ebiten.Image, error) {
		fp, err := a.fs.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open asset %q: %w", path, err)
		}

		defer func() { _ = fp.Close() }()

		img, _, err := image.Decode(fp)
		if err != nil {
			return nil, fmt.Errorf("decode image %q: %w", path, err)
		}

		return ebiten.NewImageFromImage(img), nil
	})
}

func (a *Assets) IsLoading() bool {
	return a.images.Loading() > a.images.Finished() || a.bytes.Loading() > a.bytes.Finished()
}

type AsyncAsset[T any] interface {
	Await() T
	TryAwait() (T, error)
	Poll() (T, error, bool)
}

type asyncAsset[T any] struct {
	value atomic.Pointer[T]
	error atomic.Pointer[error]
	done  <-chan struct{}
}

func loadAsync[T any](load func() (T, error)) *asyncAsset[T] {
	doneCh := make(chan struct{})
	asset := &asyncAsset[T]{done: doneCh}

	// spawn the go routine to load the actual asset
	go func() {
		defer close(doneCh)

		defer func() {
			// we got a panic, propagate to the error
			if p := recover(); p != nil {
				err := fmt.Errorf("loading asset panicked: %v", p)
				asset.error.Store(&err)
			}
		}()

		value, err := load()
		if err != nil {
			asset.error.Store(&err)
			return
		}

		asset.value.Store(&value)
	}()

	return asset
}

// Poll returns the value or the error of the asset. The last value is false
// while the asset is still loading.
func (a *asyncAsset[T]) Poll() (T, error, bool) {
	var tZero T

	if value := a.value.Load(); value != nil {
		return *value, nil, true
	}

	if err := a.error.Load(); err != nil {
		return tZero, *err, true
	}

	return tZero, nil, false
}

func (a *asyncAsset[T]) Await() T {
	value, err := a.TryAwait()
	if err != nil {
		panic(fmt.Errorf("failed to load asset: %w", err))
	}

	return value
}

func (a *asyncAsset[T]) TryAwait() (T, error) {
	<-a.done

	value, err, _ := a.Poll()
	return value, err
}

type assetCache[T any] struct {
	values   map[string]*asyncAsset[T]
	loading  atomic.Int32
	finished atomic.Int32
}

func (a *assetCache[T]) Loading() int32 {
	return a.loading.Load()
}

func (a *assetCache[T]) Finished() int32 {
	return a.finished.Load()
}

func (a *assetCache[T]) Get(p string, load func() (T, error)) *asyncAsset[T] {
	if a.values == nil {
		a.values = make(map[string]*asyncAsset[T], 16)
	}

	// cleanup path to improve cache hits
	p = path.Clean(p)

	if cached, ok := a.values[p]; ok {
		return cached
	}

	a.loading.Add(1)

	typeName := reflect.TypeFor[T]().String()

	slog.Debug("Start loading asset",
		slog.String("type", typeName),
		slog.String("path", p))

	startTime := time.Now()

	asset := loadAsync(func() (value T, err error) {
		defer a.finished.Add(1)
		defer func() {
			if err != nil {
				slog.Warn("Failed to load asset",
					slog.String("type", typeName),
					slog.String("path", p),
					slog.Duration("duration", time.Since(startTime)),
					slog.String("error", err.Error()))
			} else {
				slog.Debug("Finish loading asset",
					slog.String("type", typeName),
					slog.String("path", p),
					slog.Duration("duration", time.Since(startTime)))
			}
		}()

		return load()
	})

	a.values[p] = asset

	return asset
}

package banana

import (
	"context"
	"errors"
	"fmt"
	"image"
	"net"
	"net/url"
	"runtime"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// ImageResource is a cached image, unique per normalized URL. It starts
// unloaded and flips to loaded exactly once, when ResourceCache.Poll delivers
// its finished decode. A failed decode leaves it unloaded forever with Err
// set; renderers skip it.
type ImageResource struct {
	url    string
	image  Image
	loaded bool
	err    error
}

// URL returns the normalized key of the resource.
func (r *ImageResource) URL() string { return r.url }

// Image returns the uploaded image, or nil until the resource is loaded.
func (r *ImageResource) Image() Image { return r.image }

// Loaded reports whether the image has been decoded and uploaded.
func (r *ImageResource) Loaded() bool { return r.loaded }

// Err returns the decode error, if the decode failed.
func (r *ImageResource) Err() error { return r.err }

// PatternResource is a tileable paint built from a pattern texture. There is
// at most one per texture.
type PatternResource struct {
	texture *Texture
	paint   Paint
}

// Texture returns the texture the pattern belongs to.
func (p *PatternResource) Texture() *Texture { return p.texture }

// Paint returns the surface paint source.
func (p *PatternResource) Paint() Paint { return p.paint }

type decodeResult struct {
	res *ImageResource
	img image.Image
	err error
}

// ResourceCache deduplicates image loads and pattern creation for one engine.
// Entries are never evicted.
//
// Decoding runs on worker goroutines bounded by a semaphore. Results are only
// applied by Poll and Flush, which must be called from the goroutine that owns
// the engine; all other methods are for that goroutine too.
type ResourceCache struct {
	surface  Surface
	loader   Loader
	log      *zap.Logger
	images   map[string]*ImageResource
	patterns map[*Texture]*PatternResource

	sem     *semaphore.Weighted
	results chan decodeResult
	pending int
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewResourceCache creates a cache that uploads decoded images to surface.
// A nil loader uses DefaultLoader, workers <= 0 uses GOMAXPROCS, and a nil
// logger discards output.
func NewResourceCache(surface Surface, loader Loader, workers int, log *zap.Logger) *ResourceCache {
	if loader == nil {
		loader = DefaultLoader{}
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if log == nil {
		log = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &ResourceCache{
		surface:  surface,
		loader:   loader,
		log:      log,
		images:   make(map[string]*ImageResource),
		patterns: make(map[*Texture]*PatternResource),
		sem:      semaphore.NewWeighted(int64(workers)),
		results:  make(chan decodeResult, workers),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// NormalizeURL returns the cache key for uri. Absolute URLs are resolved:
// dot segments are removed, the host is lowercased, a default port is
// dropped, and an empty http(s) path becomes "/". Anything that does not
// parse as an absolute hierarchical URL is returned unchanged.
func NormalizeURL(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || !u.IsAbs() || u.Opaque != "" {
		return uri
	}
	u = u.ResolveReference(u)
	host := strings.ToLower(u.Hostname())
	port := u.Port()
	if (u.Scheme == "http" && port == "80") || (u.Scheme == "https" && port == "443") {
		port = ""
	}
	switch {
	case port != "":
		u.Host = net.JoinHostPort(host, port)
	case strings.Contains(host, ":"):
		u.Host = "[" + host + "]"
	default:
		u.Host = host
	}
	if u.Path == "" && (u.Scheme == "http" || u.Scheme == "https") {
		u.Path = "/"
	}
	return u.String()
}

// LoadImage returns the resource for uri, starting an asynchronous decode the
// first time a normalized URL is seen.
func (c *ResourceCache) LoadImage(uri string) *ImageResource {
	key := NormalizeURL(uri)
	if res, ok := c.images[key]; ok {
		return res
	}
	res := &ImageResource{url: key}
	c.images[key] = res
	c.pending++
	c.log.Debug("image requested", zap.String("url", key))
	go c.decode(res)
	return res
}

// decode runs on a worker goroutine and only touches its own locals.
func (c *ResourceCache) decode(res *ImageResource) {
	if err := c.sem.Acquire(c.ctx, 1); err != nil {
		return
	}
	defer c.sem.Release(1)

	r := decodeResult{res: res}
	rc, err := c.loader.Open(c.ctx, res.url)
	if err != nil {
		r.err = err
	} else {
		r.img, _, r.err = image.Decode(rc)
		rc.Close()
	}
	select {
	case c.results <- r:
	case <-c.ctx.Done():
	}
}

// Poll applies every finished decode without blocking and returns how many
// resources it delivered.
func (c *ResourceCache) Poll() int {
	n := 0
	for {
		select {
		case r := <-c.results:
			c.deliver(r)
			n++
		default:
			return n
		}
	}
}

// Flush blocks until every requested image has been delivered, or ctx is
// done, or the cache is closed.
func (c *ResourceCache) Flush(ctx context.Context) error {
	for c.pending > 0 {
		select {
		case r := <-c.results:
			c.deliver(r)
		case <-ctx.Done():
			return ctx.Err()
		case <-c.ctx.Done():
			return errors.New("banana: resource cache closed")
		}
	}
	return nil
}

// Pending returns the number of decodes not yet delivered.
func (c *ResourceCache) Pending() int { return c.pending }

func (c *ResourceCache) deliver(r decodeResult) {
	c.pending--
	if r.err != nil {
		r.res.err = r.err
		c.log.Warn("image decode failed", zap.String("url", r.res.url), zap.Error(r.err))
		return
	}
	r.res.image = c.surface.NewImage(r.img)
	r.res.loaded = true
	c.log.Debug("image loaded", zap.String("url", r.res.url))
}

// LoadPattern returns the paint for a Pattern or Repeating texture, creating
// and caching it on first use. It returns ErrNotPattern for a Basic texture
// and ErrImageNotLoaded, caching nothing, while the backing image is still
// decoding.
func (c *ResourceCache) LoadPattern(tex *Texture) (*PatternResource, error) {
	if tex.kind == TextureBasic {
		return nil, fmt.Errorf("%w: %s", ErrNotPattern, tex.image.url)
	}
	if p, ok := c.patterns[tex]; ok {
		return p, nil
	}
	if !tex.image.loaded {
		return nil, fmt.Errorf("%w: %s", ErrImageNotLoaded, tex.image.url)
	}
	p := &PatternResource{
		texture: tex,
		paint:   c.surface.NewPattern(tex.image.image, tex.repeat),
	}
	c.patterns[tex] = p
	return p, nil
}

// Len returns the number of cached images.
func (c *ResourceCache) Len() int { return len(c.images) }

// PatternLen returns the number of cached patterns.
func (c *ResourceCache) PatternLen() int { return len(c.patterns) }

// Close cancels queued decodes. Results still in flight are dropped.
func (c *ResourceCache) Close() {
	c.cancel()
}

package quadrant

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Options configures chart rendering. All fields have defaults; a nil
// *Options means DefaultOptions(). No configuration is read from the
// environment inside the library.
type Options struct {
	// AxisMin and AxisMax bound both axes in data units. Default 0-10.
	AxisMin float64
	AxisMax float64
	// XLabel and YLabel are the static axis captions.
	XLabel string
	YLabel string
	// SizeInches is the physical side length of the square surface.
	// Default: 8.
	SizeInches float64
	// DPI is the pixel density. Default 150, capped so the raster
	// stays under transport size limits.
	DPI float64
	// FontName selects the label font family. Default is the embedded
	// Go Regular face.
	FontName string
	// FontSizeMin and FontSizeMax bound the auto-shrink search in
	// points. Defaults: 6 and 12.
	FontSizeMin int
	FontSizeMax int
	// FixedFontSize, when positive, disables the auto-shrink search:
	// text is always set at this size, wrapped at measured glyph
	// widths and clipped to its rectangle.
	FixedFontSize float64
	// TextPadding is the interior label inset in data units. Default 0.2.
	TextPadding float64
	// DefaultFill is used for rectangles whose color cell was absent
	// or unparseable. Nil means white; a pointer keeps black
	// distinguishable from unset.
	DefaultFill *Color
	// MarkerColor and MarkerRadiusPt style the highlighted point.
	// Defaults: #1f77b4 (nil) and 5pt.
	MarkerColor    *Color
	MarkerRadiusPt float64
	// FontCache allows sharing a pre-scanned cache across renders.
	// If nil, a new cache is created per call.
	FontCache *FontCache
}

// markerBlue is matplotlib's default series color, kept so renders
// look like the charts this service replaces.
var markerBlue = Color{0x1F, 0x77, 0xB4}

// DefaultOptions returns the default rendering options.
func DefaultOptions() *Options {
	fill := ColorWhite
	marker := markerBlue
	return &Options{
		AxisMin:        0,
		AxisMax:        10,
		SizeInches:     8,
		DPI:            150,
		FontName:       builtinFontName,
		FontSizeMin:    6,
		FontSizeMax:    12,
		TextPadding:    0.2,
		DefaultFill:    &fill,
		MarkerColor:    &marker,
		MarkerRadiusPt: 5,
	}
}

// maxPixelsPerSide caps the raster edge so the encoded image stays
// under the transport limits of the callers that ship it as base64.
const maxPixelsPerSide = 4000

// axisLabelSizePt is the static size of the axis captions.
const axisLabelSizePt = 12

// Render composites the chart: a white surface with an axis frame and
// captions, every non-degenerate rectangle filled in input order with
// no border and no anti-aliasing, each label fitted and clipped to its
// own rectangle immediately after that rectangle is filled, and the
// point marker drawn last so it stays visible on top of everything.
//
// Degenerate rectangles are dropped silently; if none survive, Render
// fails with ErrNoRenderableGeometry rather than producing a blank
// surface.
func Render(rects []Rectangle, point Point, opts *Options) (image.Image, error) {
	o := normalizeOptions(opts)

	valid := rects[:0:0]
	for i, rc := range rects {
		if rc.IsDegenerate() {
			Logger().Debug("dropping degenerate rectangle",
				"index", i, "xmin", rc.XMin, "xmax", rc.XMax, "ymin", rc.YMin, "ymax", rc.YMax)
			continue
		}
		valid = append(valid, rc)
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("render: %w", ErrNoRenderableGeometry)
	}

	side := int(o.SizeInches * o.DPI)
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	// Margins leave room for the axis captions, wider on the left and
	// bottom where the captions sit.
	marginLB := int(0.6 * o.DPI)
	marginTR := int(0.2 * o.DPI)
	plot := image.Rect(marginLB, marginTR, side-marginTR, side-marginLB)

	r := &chartRenderer{
		img:    img,
		plot:   plot,
		opts:   o,
		scaleX: float64(plot.Dx()) / (o.AxisMax - o.AxisMin),
		scaleY: float64(plot.Dy()) / (o.AxisMax - o.AxisMin),
		cache:  o.FontCache,
	}
	if r.cache == nil {
		r.cache = NewFontCache()
	}

	r.drawFrame()
	r.drawAxisLabels()

	for _, rc := range valid {
		r.fillRectangle(rc)
		r.drawLabel(rc)
	}

	r.drawMarker(point)

	return img, nil
}

// normalizeOptions copies opts and fills zero fields with defaults.
func normalizeOptions(opts *Options) *Options {
	def := DefaultOptions()
	if opts == nil {
		return def
	}
	o := *opts
	if o.AxisMax <= o.AxisMin {
		o.AxisMin, o.AxisMax = def.AxisMin, def.AxisMax
	}
	if o.SizeInches <= 0 {
		o.SizeInches = def.SizeInches
	}
	if o.DPI <= 0 {
		o.DPI = def.DPI
	}
	if o.SizeInches*o.DPI > maxPixelsPerSide {
		o.DPI = maxPixelsPerSide / o.SizeInches
	}
	if o.FontName == "" {
		o.FontName = def.FontName
	}
	if o.FontSizeMin <= 0 {
		o.FontSizeMin = def.FontSizeMin
	}
	if o.FontSizeMax <= 0 {
		o.FontSizeMax = def.FontSizeMax
	}
	if o.TextPadding <= 0 {
		o.TextPadding = def.TextPadding
	}
	if o.DefaultFill == nil {
		o.DefaultFill = def.DefaultFill
	}
	if o.MarkerColor == nil {
		o.MarkerColor = def.MarkerColor
	}
	if o.MarkerRadiusPt <= 0 {
		o.MarkerRadiusPt = def.MarkerRadiusPt
	}
	return &o
}

// chartRenderer holds the per-render mutable surface. It is never
// shared or reused across renders; only the FontCache outlives it.
type chartRenderer struct {
	img    *image.RGBA
	plot   image.Rectangle
	opts   *Options
	scaleX float64
	scaleY float64
	cache  *FontCache
}

// pixelX maps a data-unit x coordinate to a pixel column. Both edges
// of two abutting rectangles go through this one rounding, so they
// land on the same column and leave no seam.
func (r *chartRenderer) pixelX(x float64) int {
	return r.plot.Min.X + int(math.Round((x-r.opts.AxisMin)*r.scaleX))
}

// pixelY maps a data-unit y coordinate to a pixel row (y axis points up).
func (r *chartRenderer) pixelY(y float64) int {
	return r.plot.Max.Y - int(math.Round((y-r.opts.AxisMin)*r.scaleY))
}

// rectPixels returns the pixel bounds of a data-unit rectangle,
// intersected with the plot area.
func (r *chartRenderer) rectPixels(rc Rectangle) image.Rectangle {
	px := image.Rect(r.pixelX(rc.XMin), r.pixelY(rc.YMax), r.pixelX(rc.XMax), r.pixelY(rc.YMin))
	return px.Intersect(r.plot)
}

// fillRectangle paints a solid, borderless rectangle. draw.Src with a
// uniform opaque source writes exact pixels: no anti-aliasing, so
// adjacent fills of different colors meet at a hard edge with no
// blended seam between them.
func (r *chartRenderer) fillRectangle(rc Rectangle) {
	draw.Draw(r.img, r.rectPixels(rc), &image.Uniform{rc.Fill.rgba()}, image.Point{}, draw.Src)
}

// drawLabel fits the rectangle's text and draws it left-aligned,
// vertically centered, clipped to the rectangle's exact pixel bounds.
func (r *chartRenderer) drawLabel(rc Rectangle) {
	res := FitText(r.measurer(), rc.Text, rc.Width(), rc.Height(), FitOptions{
		MinSize:   r.opts.FontSizeMin,
		MaxSize:   r.opts.FontSizeMax,
		FixedSize: r.opts.FixedFontSize,
		Padding:   r.opts.TextPadding,
	})
	if len(res.Lines) == 0 {
		return
	}
	if res.Overflow {
		Logger().Debug("label does not fit, clipping",
			"text", rc.Text, "size", res.Size)
	}

	face := r.renderFace(res.Size)
	metrics := face.Metrics()
	lineH := metrics.Height.Ceil()
	ascent := metrics.Ascent.Ceil()

	// Clip to the rectangle's geometry, not the full surface: content
	// beyond the rectangle boundary is not drawn.
	clipped, _ := r.img.SubImage(r.rectPixels(rc)).(*image.RGBA)
	if clipped == nil {
		return
	}

	x := r.pixelX(rc.XMin + r.opts.TextPadding)
	top := r.pixelY(rc.YMax - r.opts.TextPadding - res.OffsetY)
	for i, line := range res.Lines {
		d := &font.Drawer{
			Dst:  clipped,
			Src:  image.Black,
			Face: face,
			Dot:  fixed.P(x, top+ascent+i*lineH),
		}
		d.DrawString(line)
	}
}

// drawMarker paints the highlighted point as a filled disc above all
// rectangles, confined to the plot area.
func (r *chartRenderer) drawMarker(p Point) {
	cx := r.pixelX(p.X)
	cy := r.pixelY(p.Y)
	radius := r.opts.MarkerRadiusPt * r.opts.DPI / 72
	c := r.opts.MarkerColor.rgba()

	rad := int(math.Ceil(radius))
	for py := cy - rad; py <= cy+rad; py++ {
		for px := cx - rad; px <= cx+rad; px++ {
			dx := float64(px-cx) + 0.5
			dy := float64(py-cy) + 0.5
			if dx*dx+dy*dy <= radius*radius {
				r.setPixel(px, py, c)
			}
		}
	}
}

// drawFrame draws the 1px axes box around the plot area.
func (r *chartRenderer) drawFrame() {
	black := color.RGBA{A: 0xFF}
	for x := r.plot.Min.X; x <= r.plot.Max.X; x++ {
		r.img.SetRGBA(x, r.plot.Min.Y, black)
		r.img.SetRGBA(x, r.plot.Max.Y, black)
	}
	for y := r.plot.Min.Y; y <= r.plot.Max.Y; y++ {
		r.img.SetRGBA(r.plot.Min.X, y, black)
		r.img.SetRGBA(r.plot.Max.X, y, black)
	}
}

// drawAxisLabels draws the static captions: the x label centered under
// the plot, the y label rotated a quarter turn along the left margin.
func (r *chartRenderer) drawAxisLabels() {
	face := r.renderFace(axisLabelSizePt)
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	lineH := metrics.Height.Ceil()

	if r.opts.XLabel != "" {
		w := font.MeasureString(face, r.opts.XLabel).Ceil()
		x := r.plot.Min.X + (r.plot.Dx()-w)/2
		y := (r.plot.Max.Y+r.img.Bounds().Max.Y)/2 + ascent/2
		d := &font.Drawer{Dst: r.img, Src: image.Black, Face: face, Dot: fixed.P(x, y)}
		d.DrawString(r.opts.XLabel)
	}

	if r.opts.YLabel != "" {
		w := font.MeasureString(face, r.opts.YLabel).Ceil()
		if w <= 0 {
			return
		}
		// Draw into a scratch image, then rotate it a quarter turn
		// counter-clockwise so the label reads bottom to top.
		scratch := image.NewRGBA(image.Rect(0, 0, w, lineH))
		d := &font.Drawer{Dst: scratch, Src: image.Black, Face: face, Dot: fixed.P(0, ascent)}
		d.DrawString(r.opts.YLabel)
		rotated := rotate90CCW(scratch)

		x := r.plot.Min.X/2 - lineH/2
		if x < 0 {
			x = 0
		}
		y := r.plot.Min.Y + (r.plot.Dy()-w)/2
		draw.Draw(r.img, rotated.Bounds().Add(image.Pt(x, y)), rotated, image.Point{}, draw.Over)
	}
}

// rotate90CCW returns src rotated 90 degrees counter-clockwise.
func rotate90CCW(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dy(), b.Dx()))
	for y := 0; y < b.Dx(); y++ {
		for x := 0; x < b.Dy(); x++ {
			dst.Set(x, y, src.At(b.Min.X+b.Dx()-1-y, b.Min.Y+x))
		}
	}
	return dst
}

func (r *chartRenderer) setPixel(x, y int, c color.RGBA) {
	if x >= r.plot.Min.X && x < r.plot.Max.X && y >= r.plot.Min.Y && y < r.plot.Max.Y {
		r.img.SetRGBA(x, y, c)
	}
}

// renderFace returns a hinted face for drawing at sizePt, pre-scaled
// for the surface DPI, falling back to the embedded face and finally
// to basicfont if even that is unavailable.
func (r *chartRenderer) renderFace(sizePt float64) font.Face {
	scaled := sizePt * r.opts.DPI / 72
	if face := r.cache.GetFace(r.opts.FontName, scaled); face != nil {
		return face
	}
	if face := r.cache.GetFace(builtinFontName, scaled); face != nil {
		Logger().Warn("font not found, using embedded face", "font", r.opts.FontName)
		return face
	}
	return basicfont.Face7x13
}

// measureFace is renderFace's unhinted counterpart, used for fitting.
func (r *chartRenderer) measureFace(sizePt float64) font.Face {
	scaled := sizePt * r.opts.DPI / 72
	if face := r.cache.GetMeasureFace(r.opts.FontName, scaled); face != nil {
		return face
	}
	if face := r.cache.GetMeasureFace(builtinFontName, scaled); face != nil {
		return face
	}
	return basicfont.Face7x13
}

// measurer adapts the renderer's font metrics to the TextMeasurer
// interface, converting measured pixels back into data units through
// the surface's coordinate transform.
func (r *chartRenderer) measurer() TextMeasurer {
	return faceMeasurer{r}
}

type faceMeasurer struct {
	r *chartRenderer
}

func (fm faceMeasurer) MeasureLine(text string, sizePt float64) (w, h float64) {
	face := fm.r.measureFace(sizePt)
	wPx := font.MeasureString(face, text).Ceil()
	hPx := face.Metrics().Height.Ceil()
	return float64(wPx) / fm.r.scaleX, float64(hPx) / fm.r.scaleY
}

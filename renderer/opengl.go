package renderer

import (
	"context"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/achilleasa/rigel/tracer"
)

// Interval between display refreshes while tiles are still arriving.
const refreshInterval = 15 * time.Millisecond

// An interactive opengl-based renderer that displays tiles as render
// workers complete them.
type interactiveGLRenderer struct {
	*defaultRenderer

	// opengl handles
	window    *glfw.Window
	texFbo    uint32
	fbTexture uint32

	// Display buffer shared between the merge callback and the display
	// loop.
	mu      sync.Mutex
	display *image.RGBA
	dirty   bool
}

// Create an interactive renderer that draws sc through cam into a
// window sized after the frame dimensions. The caller must lock the os
// thread before calling this and keep running on it until the renderer
// is closed.
func NewInteractive(sc tracer.Scene, cam *tracer.Camera, opts Options) (Renderer, error) {
	base, err := newDefault(sc, cam, opts)
	if err != nil {
		return nil, err
	}

	r := &interactiveGLRenderer{
		defaultRenderer: base,
		display:         image.NewRGBA(base.film.Bounds()),
	}
	base.onTileDone = r.onTileDone

	if err = r.initGL(opts); err != nil {
		r.Close()
		return nil, err
	}

	return r, nil
}

func (r *interactiveGLRenderer) Close() {
	if r.window != nil {
		r.window.Destroy()
		r.window = nil
		glfw.Terminate()
	}
	r.defaultRenderer.Close()
}

func (r *interactiveGLRenderer) initGL(opts Options) error {
	var err error
	if err = glfw.Init(); err != nil {
		return fmt.Errorf("renderer: failed to initialize glfw: %s", err.Error())
	}

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	r.window, err = glfw.CreateWindow(int(opts.FrameW), int(opts.FrameH), "rigel", nil, nil)
	if err != nil {
		return fmt.Errorf("renderer: could not create opengl window: %s", err.Error())
	}
	r.window.MakeContextCurrent()

	if err = gl.Init(); err != nil {
		return fmt.Errorf("renderer: could not init opengl: %s", err.Error())
	}

	// Setup texture for image data
	gl.GenTextures(1, &r.fbTexture)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.fbTexture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(opts.FrameW), int32(opts.FrameH), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)

	// Attach texture to FBO
	gl.GenFramebuffers(1, &r.texFbo)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, r.texFbo)
	gl.FramebufferTexture2D(gl.READ_FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, r.fbTexture, 0)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)

	// Bind event callbacks
	r.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	r.window.SetKeyCallback(r.onKeyEvent)

	return nil
}

// Render frame, displaying tiles as the workers deliver them. Closing
// the window or pressing ESC cancels the render.
func (r *interactiveGLRenderer) Render(ctx context.Context) (*image.RGBA, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type renderResult struct {
		frame *image.RGBA
		err   error
	}
	resChan := make(chan renderResult, 1)
	go func() {
		frame, err := r.defaultRenderer.Render(ctx)
		resChan <- renderResult{frame: frame, err: err}
	}()

	var res *renderResult
	for !r.window.ShouldClose() {
		glfw.PollEvents()

		if res == nil {
			select {
			case v := <-resChan:
				res = &v
				if v.err != nil {
					return nil, v.err
				}
			default:
			}
		}

		r.uploadDisplay()

		// Copy texture data to framebuffer. The blit flips y as image
		// rows run top-down while gl framebuffers run bottom-up.
		frameW, frameH := int32(r.opts.FrameW), int32(r.opts.FrameH)
		gl.BindFramebuffer(gl.READ_FRAMEBUFFER, r.texFbo)
		gl.BlitFramebuffer(0, 0, frameW, frameH, 0, frameH, frameW, 0, gl.COLOR_BUFFER_BIT, gl.LINEAR)
		gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)

		r.window.SwapBuffers()
		time.Sleep(refreshInterval)
	}

	// Window closed; stop any in-flight workers and collect the result.
	cancel()
	if res == nil {
		v := <-resChan
		res = &v
	}
	return res.frame, res.err
}

// Refresh the display texture if any tiles were merged since the last
// upload.
func (r *interactiveGLRenderer) uploadDisplay() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.dirty {
		return
	}

	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(r.opts.FrameW), int32(r.opts.FrameH), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(r.display.Pix))
	r.dirty = false
}

// Tonemap the pixels touched by a merged tile into the display buffer.
// Runs on the scheduling goroutine.
func (r *interactiveGLRenderer) onTileDone(t tracer.Tile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.film.WriteRegion(r.display, r.film.PixelRegion(t.Bounds), r.opts.Exposure, r.opts.Gamma)
	r.dirty = true
}

func (r *interactiveGLRenderer) onKeyEvent(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}

	switch key {
	case glfw.KeyEscape:
		r.window.SetShouldClose(true)
	}
}

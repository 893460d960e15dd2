//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/cwbudde/voicefield/internal/webapp"
	"github.com/cwbudde/voicefield/voice"
)

var (
	engine *webapp.Engine
	funcs  []js.Func

	pushScratch []float64
)

func main() {
	api := js.Global().Get("Object").New()

	api.Set("init", export(func(args []js.Value) any {
		opts := []webapp.Option{}
		if len(args) > 0 {
			opts = append(opts, webapp.WithSampleRate(args[0].Float()))
		}
		if len(args) > 2 {
			opts = append(opts, webapp.WithMeshBands(args[1].Int(), args[2].Int()))
		}
		e, err := webapp.NewEngine(opts...)
		if err != nil {
			return err.Error()
		}
		engine = e
		return js.Null()
	}))

	api.Set("pushSamples", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Null()
		}
		arr := args[0]
		n := arr.Length()
		if cap(pushScratch) < n {
			pushScratch = make([]float64, n)
		}
		pushScratch = pushScratch[:n]
		for i := 0; i < n; i++ {
			pushScratch[i] = arr.Index(i).Float()
		}
		engine.PushSamples(pushScratch)
		return js.Null()
	}))

	api.Set("frame", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Null()
		}
		engine.Frame(args[0].Float())
		return js.Null()
	}))

	api.Set("positions", export(func(args []js.Value) any {
		if engine == nil {
			return js.Global().Get("Float32Array").New(0)
		}
		return float32Array(engine.Positions())
	}))

	api.Set("normals", export(func(args []js.Value) any {
		if engine == nil {
			return js.Global().Get("Float32Array").New(0)
		}
		return float32Array(engine.Normals())
	}))

	api.Set("colors", export(func(args []js.Value) any {
		if engine == nil {
			return js.Global().Get("Float32Array").New(0)
		}
		return float32Array(engine.Colors())
	}))

	api.Set("indices", export(func(args []js.Value) any {
		if engine == nil {
			return js.Global().Get("Uint32Array").New(0)
		}
		src := engine.Indices()
		arr := js.Global().Get("Uint32Array").New(len(src))
		for i, v := range src {
			arr.SetIndex(i, v)
		}
		return arr
	}))

	api.Set("vertexCount", export(func(args []js.Value) any {
		if engine == nil {
			return 0
		}
		return engine.VertexCount()
	}))

	api.Set("uniforms", export(func(args []js.Value) any {
		if engine == nil {
			return js.Null()
		}
		u := engine.Uniforms()
		obj := js.Global().Get("Object").New()
		obj.Set("scale", u.Scale)
		obj.Set("visibility", u.Visibility)
		obj.Set("opaque", u.Opaque)
		obj.Set("rotationX", u.RotationX)
		obj.Set("rotationY", u.RotationY)
		return obj
	}))

	api.Set("setPointer", export(func(args []js.Value) any {
		if engine == nil || len(args) < 6 {
			return js.Null()
		}
		origin := mgl64.Vec3{args[0].Float(), args[1].Float(), args[2].Float()}
		dir := mgl64.Vec3{args[3].Float(), args[4].Float(), args[5].Float()}
		engine.SetPointerRay(origin, dir)
		return js.Null()
	}))

	api.Set("clearPointer", export(func(args []js.Value) any {
		if engine != nil {
			engine.ClearPointer()
		}
		return js.Null()
	}))

	api.Set("setSettings", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Null()
		}
		p := args[0]
		engine.SetSettings(voice.Settings{
			Sensitivity:    p.Get("sensitivity").Float(),
			NoiseGate:      p.Get("noiseGate").Float(),
			AnimationSpeed: p.Get("animationSpeed").Float(),
			Muted:          p.Get("muted").Bool(),
		})
		return js.Null()
	}))

	api.Set("settings", export(func(args []js.Value) any {
		if engine == nil {
			return js.Null()
		}
		s := engine.Settings()
		obj := js.Global().Get("Object").New()
		obj.Set("sensitivity", s.Sensitivity)
		obj.Set("noiseGate", s.NoiseGate)
		obj.Set("animationSpeed", s.AnimationSpeed)
		obj.Set("muted", s.Muted)
		return obj
	}))

	api.Set("telemetry", export(func(args []js.Value) any {
		if engine == nil {
			return js.Null()
		}
		t, ok := engine.Telemetry()
		if !ok {
			return js.Null()
		}
		obj := js.Global().Get("Object").New()
		obj.Set("low", t.Low)
		obj.Set("mid", t.Mid)
		obj.Set("high", t.High)
		return obj
	}))

	api.Set("start", export(func(args []js.Value) any {
		if engine == nil {
			return js.Null()
		}
		if err := engine.Start(nil); err != nil {
			return err.Error()
		}
		return js.Null()
	}))

	api.Set("stop", export(func(args []js.Value) any {
		if engine != nil {
			engine.Stop()
		}
		return js.Null()
	}))

	api.Set("switchDevice", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Null()
		}
		if err := engine.SwitchDevice(args[0].String(), nil); err != nil {
			return err.Error()
		}
		return js.Null()
	}))

	api.Set("currentDevice", export(func(args []js.Value) any {
		if engine == nil {
			return ""
		}
		return engine.CurrentDevice()
	}))

	api.Set("isListening", export(func(args []js.Value) any {
		return engine != nil && engine.Listening()
	}))

	api.Set("setDevices", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Null()
		}
		arr := args[0]
		devices := make([]voice.Device, arr.Length())
		for i := 0; i < arr.Length(); i++ {
			item := arr.Index(i)
			devices[i] = voice.Device{
				ID:    item.Get("id").String(),
				Label: item.Get("label").String(),
			}
		}
		engine.SetDevices(devices)
		return js.Null()
	}))

	api.Set("devices", export(func(args []js.Value) any {
		out := js.Global().Get("Array").New()
		if engine == nil {
			return out
		}
		for i, d := range engine.Devices() {
			obj := js.Global().Get("Object").New()
			obj.Set("id", d.ID)
			obj.Set("label", d.Label)
			out.SetIndex(i, obj)
		}
		return out
	}))

	api.Set("captureConstraints", export(func(args []js.Value) any {
		c := voice.DefaultCaptureConstraints()
		obj := js.Global().Get("Object").New()
		obj.Set("echoCancellation", c.EchoCancellation)
		obj.Set("noiseSuppression", c.NoiseSuppression)
		obj.Set("autoGainControl", c.AutoGainControl)
		return obj
	}))

	js.Global().Set("VoiceField", api)
	select {}
}

func float32Array(src []float32) js.Value {
	arr := js.Global().Get("Float32Array").New(len(src))
	for i, v := range src {
		arr.SetIndex(i, v)
	}
	return arr
}

func export(fn func([]js.Value) any) js.Func {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		return fn(args)
	})
	funcs = append(funcs, f)
	return f
}

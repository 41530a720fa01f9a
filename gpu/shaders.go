// Package gpu provides the concrete GPU sink (spec §6) and draw context
// (spec §4.J): a go-gl-backed implementation of sink.Sink plus the
// shader-compile, per-frame-state, and batch-upload logic that drives it.
// Grounded on original_source/draw.rs for the shader sources and draw
// sequence, and on the dantero-ps-mini-mc-go teacher-adjacent repo's
// internal/graphics/shader.go for the raw go-gl compile/link idiom
// (gl.Strs/gl.GetShaderiv/gl.GetShaderInfoLog), since the chosen teacher
// (bloeys-nterm) delegates shader compilation to the nmage dependency this
// module dropped.
package gpu

// vertexShaderSource and fragmentShaderSource are the two fixed GLSL 1.20
// shaders of spec §6, carried over from original_source/draw.rs verbatim
// (the original's attribute/varying names, kept so the wire contract with
// any existing asset pipeline stays recognizable).
const vertexShaderSource = `#version 120
attribute vec3 aVertexPosition;
attribute vec4 aVertexColor;
attribute vec2 aBufferGamma;
attribute vec2 aTextureCoord;

varying vec4 vVertexColor;
varying vec2 vBufferGamma;
varying vec2 vTextureCoord;

void main() {
    vVertexColor = aVertexColor;
    vBufferGamma = aBufferGamma;
    vTextureCoord = aTextureCoord;
    gl_Position = vec4(aVertexPosition, 1.0);
}
` + "\x00"

const fragmentShaderSource = `#version 120
#ifdef GL_ES
precision mediump float;
#endif

uniform sampler2D uTexture;

varying vec4 vVertexColor;
varying vec2 vBufferGamma;
varying vec2 vTextureCoord;

void main() {
    vec4 lTextureColor = texture2D(uTexture, vTextureCoord);
    float lAlpha = smoothstep(vBufferGamma.x - vBufferGamma.y,
                              vBufferGamma.x + vBufferGamma.y,
                              lTextureColor.a);
    vec4 lColor = vec4(lTextureColor.rgb, lAlpha) + vVertexColor;
    if (lColor.ga == vec2(0.0, 0.0))
        discard;
    gl_FragColor = lColor;
}
` + "\x00"

// Package audio loads a recording into mono float32 samples.
//
// WAV input is decoded natively with go-audio/wav. Other containers are first
// converted by ffmpeg into a temporary 16 kHz mono PCM WAV file.
package audio

// Package api exposes the assessment pipeline over HTTP with gin.
//
// Routes:
//
//	GET  /                             service banner
//	POST /analyze/                     multipart file + target_word
//	POST /analyze-color-pronunciation  multipart audio + colorName, rule scoring
//	POST /assess                       JSON with base64 audio
//	POST /analyze-speech               JSON with base64 WAV, transcript accuracy
//	GET  /words                        vocabulary, optionally ?category=
//	GET  /words/:word                  one vocabulary entry
//
// Assessment routes answer with the Result JSON. A failed Result carries
// the status of its error (422 for undecodable audio, 500 for scorer
// faults) except on the color route, which always answers 200 like the
// client it was built for expects.
package api

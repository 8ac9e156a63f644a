// Package httpclient provides the HTTP transport used by provider adapters:
// a client with a fixed per-request timeout, bearer authentication, and
// multipart/form-data bodies for audio uploads.
//
// The client never retries and never turns a non-2xx status into an error;
// callers inspect Response.StatusCode and decide. Only failures to obtain a
// response at all (connection, TLS, timeout) are returned as *Error.
//
// # Basic Usage
//
//	client, err := httpclient.New(httpclient.Config{
//	    Timeout: 300 * time.Second,
//	    Auth:    httpclient.BearerAuth(apiKey),
//	})
//
//	resp, err := client.Do(ctx, httpclient.Request{
//	    Method: http.MethodPost,
//	    Path:   "https://api.openai.com/v1/audio/transcriptions",
//	    Body: &httpclient.MultipartBody{
//	        Fields: map[string]string{"model": "whisper-1"},
//	        Files:  []httpclient.FileField{{FieldName: "file", FileName: "audio.mp3", ContentType: "audio/mpeg", Data: mp3}},
//	    },
//	})
package httpclient

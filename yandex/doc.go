// Package yandex provides a client for the Yandex Maps geocoder HTTP API.
//
// The client accumulates geocoding parameters (a point or a free-text query,
// a search area, a toponym kind, language and pagination) and sends them as a
// single GET request to https://geocode-maps.yandex.ru/{version}/.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client := yandex.NewClient("your-api-key", logger)
//
//	err := client.
//		SetQuery("Moscow, Tverskaya 7").
//		SetLimit(5).
//		Load(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if obj, ok := client.Response().First(); ok {
//		fmt.Println(obj.Text, obj.Point)
//	}
//
// Setters mutate the client and return it, so one client can serve several
// requests; call Clear to return to the defaults (lang ru-RU, json format,
// 10 results, no offset).
//
// # Error Handling
//
// Load returns one of three error types, each matching a sentinel with
// errors.Is:
//
//   - TransportError (ErrTransport): no payload was received
//   - EmptyPayloadError (ErrEmptyPayload): the body decoded to nothing
//   - ServiceError (ErrService): the geocoder reported an error
//
// For example:
//
//	var serr *yandex.ServiceError
//	if errors.As(err, &serr) && serr.IsUnauthorized() {
//		// check the API key
//	}
package yandex

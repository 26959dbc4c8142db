// Package server exposes waterfall layout over HTTP.
//
// Routes:
//
//	GET    /healthz                                  build info
//	POST   /v1/layout                                lay out the scenario in the body
//	POST   /v1/scenarios                             store a scenario, returns its id
//	GET    /v1/scenarios                             list stored ids
//	GET    /v1/scenarios/{id}                        fetch a stored scenario
//	DELETE /v1/scenarios/{id}                        delete a stored scenario
//	GET    /v1/scenarios/{id}/layout                 lay out a stored scenario
//	GET    /v1/scenarios/{id}/query?x=&y=&w=&h=      attributes in a rectangle
//	GET    /v1/scenarios/{id}/items/{section}/{item} attributes of one item
//
// Layout routes accept ?width= to override the scenario width and
// ?format=json|svg|png. Scenario bodies are JSON unless the Content-Type
// mentions toml.
//
// Errors are JSON objects {"code": ..., "message": ...} with the status from
// [errors.HTTPStatus]. Every response carries an X-Request-ID header.
package server

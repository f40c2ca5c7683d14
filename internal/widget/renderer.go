package widget

import (
	"html/template"
	"io"
)

// Data feeds the embed snippet. IdleVideoURL may be empty; the markup then
// falls back to the still image.
type Data struct {
	SiteID            string
	ButtonText        string
	ButtonColor       string
	FallbackAvatarURL string
	IdleVideoURL      string
	BootstrapURL      string
}

// The element ids are a published contract; embedding pages style and
// script against them.
var embedTemplate = template.Must(template.New("embed").Parse(`<div id="avatar-widget-container" data-site-id="{{.SiteID}}" data-bootstrap-url="{{.BootstrapURL}}">
  <div id="avatar-widget-card">
    <button id="avatar-widget-close" type="button" aria-label="Close">&times;</button>
    <div id="avatar-widget-idle">
      {{if .IdleVideoURL}}<video id="avatar-widget-idle-video" src="{{.IdleVideoURL}}" autoplay loop muted playsinline></video>
      {{else if .FallbackAvatarURL}}<img id="avatar-widget-idle-video" src="{{.FallbackAvatarURL}}" alt="">
      {{end}}
    </div>
    <div id="avatar-widget-remote-wrap" hidden>
      <video id="avatar-widget-remote-video" autoplay playsinline></video>
    </div>
    <div id="avatar-widget-loading" hidden>Connecting&hellip;</div>
    <div id="avatar-widget-error" hidden></div>
    <button id="avatar-widget-talk-now" type="button" style="background-color: {{.ButtonColor}}">{{.ButtonText}}</button>
    <div id="avatar-widget-controls" hidden>
      <button id="avatar-widget-mute" type="button">Mute</button>
      <button id="avatar-widget-hangup" type="button">End</button>
    </div>
  </div>
</div>
`))

type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() *Renderer {
	return &Renderer{tmpl: embedTemplate}
}

func (r *Renderer) Render(w io.Writer, data Data) error {
	return r.tmpl.Execute(w, data)
}

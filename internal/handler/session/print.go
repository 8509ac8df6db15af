package session

import (
	"html/template"
	"log"
	"net/http"

	"github.com/sakura-edu/aichan-hiroba/backend/pkg/utils"
)

// reportTemplate renders the reflection report as a static printable page.
var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="ja">
<head>
<meta charset="utf-8">
<title>がんばったよレポート</title>
<style>
body { font-family: sans-serif; max-width: 640px; margin: 2rem auto; color: #333; }
h1 { color: #667eea; text-align: center; }
section { border: 2px solid #e0e0e0; border-radius: 12px; padding: 1rem 1.5rem; margin-bottom: 1rem; }
h2 { font-size: 1.1rem; margin-top: 0; }
ul { list-style: none; padding: 0; }
li { margin: 0.25rem 0; }
footer { text-align: center; color: #666; font-size: 0.9rem; }
@media print { body { margin: 0; } }
</style>
</head>
<body>
<h1>がんばったよレポート</h1>
<section>
<h2>とりくんだ課題</h2>
<p>{{.Task}}</p>
</section>
<section>
<h2>{{.PartnerAvatar}} {{.PartnerName}}からのメッセージ</h2>
<p>きみは、こんなにがんばったね！</p>
<p>{{.Summary}}</p>
</section>
<section>
<h2>がんばったポイント</h2>
<ul>
{{range .Feelings}}<li>{{.Emoji}} {{.Label}}</li>
{{end}}</ul>
</section>
<footer>学習時間: {{.DurationMinutes}}分 ／ やりとりした回数: {{.MessageCount}}回</footer>
</body>
</html>
`))

func (h *Handler) handlePrintReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.sessionSvc.Report(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := reportTemplate.Execute(w, report); err != nil {
		log.Printf("[report] failed to render print view: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to render report")
	}
}

package api

import "net/http"

// HandleIndex serves the single-page checker UI.
func (h *Handlers) HandleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexHTML))
}

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Vigil Security Checker</title>
    <style>
        body { font-family: Arial, sans-serif; text-align: center; padding: 20px; }
        input, button { padding: 10px; margin: 10px; font-size: 16px; }
        #result { font-weight: bold; margin-top: 20px; }
        #alerts { margin-top: 30px; text-align: left; max-width: 640px; margin-left: auto; margin-right: auto; }
        .alert-line { color: #b00; font-size: 14px; }
    </style>
</head>
<body>
    <h1>Vigil Security Checker</h1>
    <p>Check spam calls, fake emails, and unsafe websites.</p>

    <input type="text" id="input" placeholder="Enter email, website, or phone">
    <br>
    <button onclick="check('email')">Check Email</button>
    <button onclick="check('phone')">Check Phone</button>
    <button onclick="check('url')">Check Website</button>

    <p id="result"></p>
    <div id="alerts"><h3>Live alerts</h3></div>

    <script>
        async function check(kind) {
            const value = document.getElementById("input").value.trim();
            const result = document.getElementById("result");
            const resp = await fetch("/api/check", {
                method: "POST",
                headers: { "Content-Type": "application/json" },
                body: JSON.stringify({ kind, value }),
            });
            const data = await resp.json();
            result.textContent = data.message;
        }

        const proto = location.protocol === "https:" ? "wss" : "ws";
        const sock = new WebSocket(proto + "://" + location.host + "/ws/alerts");
        sock.onmessage = (msg) => {
            const event = JSON.parse(msg.data);
            const line = document.createElement("p");
            line.className = "alert-line";
            line.textContent = event.emitted_at + " [" + event.title + "] " + event.message;
            document.getElementById("alerts").appendChild(line);
        };
    </script>
</body>
</html>`

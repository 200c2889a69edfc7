package mailer

import "html/template"

var welcomeTmpl = template.Must(template.New("welcome").Parse(`
<h2>Welcome, {{.Name}}!</h2>
<p>Thanks for joining Oven Fresh. Please confirm your email address to get started:</p>
<p><a href="{{.VerificationURL}}">Verify my email</a></p>
<p>If you did not create this account, you can ignore this message.</p>
`))

var passwordResetTmpl = template.Must(template.New("password_reset").Parse(`
<h2>Hi {{.Name}},</h2>
<p>We received a request to reset your password. The link below is valid for one hour:</p>
<p><a href="{{.ResetURL}}">Reset my password</a></p>
<p>If you did not request this, no action is needed.</p>
`))

var orderConfirmationTmpl = template.Must(template.New("order_confirmation").Parse(`
<h2>Thanks, {{.Name}}! Your order is confirmed.</h2>
<p>Order reference: <strong>{{.Order.OrderRef}}</strong></p>
<table cellpadding="6">
  <tr><th align="left">Pizza</th><th align="left">Size</th><th align="left">Qty</th><th align="right">Price</th></tr>
  {{range .Order.Items}}
  <tr>
    <td>{{.BaseName}}, {{.SauceName}}, {{.CheeseName}}{{range .Toppings}}, {{.Name}}{{end}}</td>
    <td>{{.Size}}</td>
    <td>{{.Quantity}}</td>
    <td align="right">{{printf "%.2f" .LinePrice}}</td>
  </tr>
  {{end}}
</table>
<p><strong>Total: {{.Order.Currency}} {{printf "%.2f" .Order.TotalAmount}}</strong></p>
{{if .EstimatedDelivery}}<p>Estimated delivery: {{.EstimatedDelivery.Format "3:04 PM, Jan 2"}}</p>{{end}}
`))

var statusUpdateTmpl = template.Must(template.New("status_update").Parse(`
<h2>Hi {{.Name}},</h2>
<p>Your order <strong>{{.Order.OrderRef}}</strong> has a new status: <strong>{{.Order.Status}}</strong>.</p>
<p>{{.Message}}</p>
`))

var deliveredTmpl = template.Must(template.New("delivered").Parse(`
<h2>Enjoy your pizza, {{.Name}}!</h2>
<p>Your order <strong>{{.Order.OrderRef}}</strong> has been delivered.</p>
<p>We would love to hear how it was. You can rate your order from your order history.</p>
`))

var stockAlertTmpl = template.Must(template.New("stock_alert").Parse(`
<h2>Inventory alert</h2>
<p>Sweep at {{.CheckedAt.Format "3:04 PM, Jan 2 2006"}}.</p>
{{if .OutOfStock}}
<h3>Out of stock</h3>
<ul>
  {{range .OutOfStock}}<li><strong>{{.Name}}</strong> ({{.Category}})</li>{{end}}
</ul>
{{end}}
{{if .LowStockItems}}
<h3>Running low</h3>
<ul>
  {{range .LowStockItems}}<li><strong>{{.Name}}</strong> ({{.Category}}): {{.Stock}} left, threshold {{.Threshold}}</li>{{end}}
</ul>
{{end}}
<p>Please restock from the admin dashboard.</p>
`))

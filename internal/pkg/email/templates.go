package email

// BaseTemplate is the base layout for all emails
const BaseTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        body { margin: 0; padding: 0; font-family: Georgia, 'Times New Roman', serif; background: #f7f3ec; color: #2b2118; }
        .container { max-width: 600px; margin: 0 auto; padding: 32px 16px; }
        .card { background: #ffffff; border-radius: 8px; padding: 28px; border: 1px solid #e6dccb; }
        h2 { font-size: 22px; margin: 0 0 16px; }
        p { font-size: 15px; line-height: 1.6; margin: 0 0 14px; }
        table { width: 100%; border-collapse: collapse; margin: 12px 0 18px; }
        td { padding: 6px 0; border-bottom: 1px solid #f0e9dd; font-size: 14px; }
        td.label { color: #7a6a58; width: 45%; }
        .code { font-family: monospace; font-size: 18px; letter-spacing: 2px; }
        .footer { text-align: center; font-size: 12px; color: #9a8b78; margin-top: 20px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="card">
            {{.Content}}
        </div>
        <p class="footer">This is an automated message about your stay.</p>
    </div>
</body>
</html>`

// BookingReceivedTemplate goes to the guest right after submission
const BookingReceivedTemplate = `
<h2>Thank you, {{.GuestName}}</h2>
<p>We have received your booking and your UPI payment screenshot. Our team will verify the payment and confirm your stay shortly.</p>
<p>Booking code: <span class="code">{{.Code}}</span></p>
<table>
    <tr><td class="label">Room</td><td>{{.RoomName}} x {{.Rooms}}</td></tr>
    <tr><td class="label">Check-in</td><td>{{.CheckIn}}</td></tr>
    <tr><td class="label">Check-out</td><td>{{.CheckOut}} ({{.Nights}} nights)</td></tr>
    <tr><td class="label">Total (incl. GST)</td><td>{{.Currency}} {{.TotalAmount}}</td></tr>
    <tr><td class="label">Paid now</td><td>{{.Currency}} {{.PaidAmount}}</td></tr>
    <tr><td class="label">Due at the hotel</td><td>{{.Currency}} {{.PendingAmount}}</td></tr>
</table>
<p>Please keep the booking code handy when you arrive.</p>
`

// PaymentToVerifyTemplate goes to hotel staff
const PaymentToVerifyTemplate = `
<h2>Payment to verify: {{.Code}}</h2>
<table>
    <tr><td class="label">Guest</td><td>{{.GuestName}} ({{.GuestEmail}}, {{.GuestPhone}})</td></tr>
    <tr><td class="label">Room</td><td>{{.RoomName}} x {{.Rooms}}</td></tr>
    <tr><td class="label">Stay</td><td>{{.CheckIn}} to {{.CheckOut}}</td></tr>
    <tr><td class="label">Expected UPI amount</td><td>{{.Currency}} {{.PaidAmount}}</td></tr>
    <tr><td class="label">Total</td><td>{{.Currency}} {{.TotalAmount}}</td></tr>
</table>
<p><a href="{{.ScreenshotURL}}">Open payment screenshot</a></p>
`

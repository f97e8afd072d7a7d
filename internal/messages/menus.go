package messages

import (
	"fmt"
	"strings"
	"time"
)

// Menu button labels. The reply keyboard sends these back as plain text.
const (
	ButtonJasherMenu   = "✨ Jasher Menu"
	ButtonPlansFree    = "⚡ Plans Free"
	ButtonPlansOwner   = "💎 Plans Owner"
	ButtonContactOwner = "💬 Contact Owner"
	ButtonToolsMenu    = "🧩 Tools Menu"
	ButtonContactAdmin = "⁉️ Hubungi Owner"
	ButtonBack         = "🔙 Kembali"
	ButtonCancel       = "❌ BATALKAN"
)

// BotInfo carries the fields rendered into every menu caption header.
type BotInfo struct {
	Username   string
	Developer  string
	Version    string
	ChannelURL string
	Groups     int
	Users      int
	Uptime     time.Duration
}

func menuHeader(info BotInfo) string {
	username := info.Username
	if username == "" {
		username = "Tidak ada username"
	}
	return fmt.Sprintf(`<blockquote>( 🍁 ) - 情報 𝗢𝗹𝗮𝗮 %s</blockquote>
𝗝𝗮𝘀𝗲𝗯 ─ 𝗧𝗲𝗹𝗲𝗴𝗿𝗮𝗺 ボットは、速く柔軟で安全な自動化ツール。デジタルタスクを
┌────────>
│ 𝐈𝐧𝐟𝐨𝐫𝐦𝐚𝐬𝐢 ☇ 𝐁𝐨𝐭 ° 𝐉𝐚𝐬𝐞𝐛
├⬡ Author : %s 〽️
├⬡ Versi : %s
├⬡ Grup Count : %d
├⬡ Users Count : %d
├⬡ Channel : <a href="%s">Gabung Channel</a>
├⬡ Time Bot : %s
└────>`,
		Escape(username), Escape(info.Developer), Escape(info.Version),
		info.Groups, info.Users, info.ChannelURL, FormatUptime(info.Uptime))
}

const menuFooter = `<blockquote>Created By <a href="https://t.me/ku_kaii">kaii</a></blockquote>`

func MainMenuCaption(info BotInfo) string {
	return menuHeader(info) + "\n" + menuFooter
}

func JasherMenuCaption(info BotInfo) string {
	return menuHeader(info) + `
<blockquote>✨ Jasher Menu</blockquote>
• /sharemsg
• /broadcast
• /sharemsgv2
• /broadcastv2
• /setpesan
• /setjeda
• /auto on/off
• /auto status
` + menuFooter
}

func OwnerMenuCaption(info BotInfo) string {
	return menuHeader(info) + `
<blockquote>💎 Plans Owner</blockquote>
• /addownjs
• /delownjs
• /listownjs
• /addakses
• /delakses
• /listakses
` + menuFooter
}

func ToolsMenuCaption(info BotInfo) string {
	return menuHeader(info) + `
<blockquote>🧩 Tools Menu</blockquote>
• /addbl
• /delbl
• /listbl
• /ping
• /cekid
• /backup
` + menuFooter
}

func FreePlansCaption(info BotInfo) string {
	return menuHeader(info) + `
<blockquote>⚡ PLANS FREE</blockquote>
┌─ ⧼ 𝗖𝗔𝗥𝗔 𝗗𝗔𝗣𝗔𝗧𝗜𝗡 𝗣𝗥𝗘𝗠 ⧽
├ 𝙼𝙰𝚂𝚄𝙺𝙸𝙽 𝙱𝙾𝚃 𝙺𝙴 𝙶𝚁𝚄𝙱 𝙼𝙸𝙽𝙸𝙼𝙰𝙻 2 𝙶𝚁𝚄𝙿
├ 𝙹𝙸𝙺𝙰 𝚂𝚄𝙳𝙰𝙷 𝙺𝙰𝙻𝙸𝙰𝙽 𝙱𝙰𝙺𝙰𝙻 𝙳𝙰𝙿𝙴𝚃 𝙰𝙺𝚂𝙴𝚂 𝙿𝚁𝙴𝙼 𝙾𝚃𝙾𝙼𝙰𝚃𝙸𝚂
├ 𝙳𝙰𝙽 𝙻𝚄 𝚃𝙸𝙽𝙶𝙶𝙰𝙻 𝙺𝙴𝚃𝙸𝙺 𝚈𝙰𝙽𝙶 𝙼𝙰𝚄 𝙳𝙸 𝚂𝙷𝙴𝚁𝙴
├ 𝙳𝙰𝙽 𝙻𝚄 𝚃𝙸𝙽𝙶𝙶𝙰𝙻 𝚁𝙴𝙿𝙻𝚈 𝚃𝙴𝙺𝚂 𝙽𝚈𝙰 𝙺𝙴𝚃𝙸𝙺 /𝚂𝙷𝙰𝚁𝙴𝙼𝚂𝙶
╰────────────────────
┌─ ⧼ 𝗣𝗘𝗥𝗔𝗧𝗨𝗥𝗔𝗡‼️ ⧽
├ 𝙹𝙸𝙺𝙰 𝙱𝙾𝚃 𝚂𝚄𝙳𝙰𝙷 𝙱𝙴𝚁𝙶𝙰𝙱𝚄𝙽𝙶
├ 𝙳𝙰𝙽 𝙰𝙽𝙳𝙰 𝙼𝙴𝙽𝙶𝙴𝙻𝚄𝙰𝚁𝙺𝙰𝙽 𝙽𝚈𝙰
├ 𝙱𝙾𝚃 𝙰𝙺𝙰𝙽 𝙾𝚃𝙾𝙼𝙰𝚃𝙸𝚂 𝙼𝙴𝙽𝙶𝙷𝙰𝙿𝚄𝚂 𝙰𝙺𝚂𝙴𝚂 𝙿𝚁𝙴𝙼
├ 𝙹𝙰𝙽𝙶𝙰𝙽 𝙳𝙸 𝚂𝙿𝙰𝙼 𝙱𝙾𝚃 𝙽𝚈𝙰
├ 𝙷𝙰𝚁𝙰𝙿 𝙳𝙸 𝙿𝙰𝚃𝚄𝙷𝙸 ‼️
╰────────────────────
<blockquote>CREATED BY @ku_kaii</blockquote>`
}

func OwnerMenuDenied() string {
	return "⛔ Only Owner Can Use This Menu"
}

// IDCard renders the /cekid card. The DC is derived from the high bits of
// the user ID.
func IDCard(fullName, userID, username string, dcID int, date string) string {
	if strings.TrimSpace(username) == "" {
		username = "Tidak ada"
	}
	return strings.TrimSpace(fmt.Sprintf(`
🪪 <b>ID CARD TELEGRAM</b>

👤 <b>Nama</b> : %s
🆔 <b>User ID</b> : <code>%s</code>
🌐 <b>Username</b> : %s
🔒 <b>DC ID</b> : %d
📅 <b>Tanggal</b> : %s

© @ku_kaii`, Escape(fullName), userID, Escape(username), dcID, date))
}

// PingInfo renders the /ping host summary.
func PingInfo(cpuModel string, cpuCores int, freeGB, totalGB float64, uptime time.Duration) string {
	return strings.TrimSpace(fmt.Sprintf(`
<blockquote>
🖥️ Informasi VPS

CPU:%s(%d CORE)
RAM: %.2f GB / %.2f GB
Uptime: %s
</blockquote>`, Escape(cpuModel), cpuCores, freeGB, totalGB, FormatUptime(uptime)))
}

func PingFailed() string {
	return "❌ Gagal membaca info VPS."
}

func FormatUptime(d time.Duration) string {
	total := int(d.Seconds())
	days := total / 86400
	hours := (total % 86400) / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%d hari, %d jam, %d menit, %d detik", days, hours, minutes, seconds)
}

package messages

import (
	"fmt"
	"strings"
	"time"
)

const ParseModeHTML = "HTML"

func Escape(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"\"", "&quot;",
		"'", "&#39;",
	)
	return replacer.Replace(strings.TrimSpace(s))
}

func Blocked() string {
	return "⛔ Kamu diblokir tidak bisa menggunakan bot."
}

func OwnerOnly() string {
	return "⛔ Can Only Be Used Owner"
}

func PrimaryOwnerOnly() string {
	return "⛔ Hanya Owner Utama yang bisa menggunakan perintah ini."
}

func PremiumOnly() string {
	return "⛔ Can Only Be Used Premium User"
}

func OwnerOrPremiumOnly() string {
	return "⛔ Hanya bisa digunakan oleh Owner atau User Premium."
}

func CooldownWait(command string, remaining time.Duration) string {
	total := int(remaining.Round(time.Second).Seconds())
	return fmt.Sprintf("🕒 Tunggu %d menit %d detik sebelum menggunakan /%s lagi.", total/60, total%60, command)
}

func NeedReply(what string) string {
	return fmt.Sprintf("⚠️ Harap reply ke pesan yang ingin %s.", what)
}

func NoGroups() string {
	return "⚠️ Tidak ada grup terdaftar untuk share."
}

func NoUsers() string {
	return "⚠️ Tidak ada user terdaftar untuk broadcast."
}

func FanoutStart(label string, total int, unit string) string {
	return fmt.Sprintf("📡 Memproses %s ke %d %s...", label, total, unit)
}

func FanoutDone(label string, total, succeeded, failed int, unit string) string {
	return strings.TrimSpace(fmt.Sprintf(`
✅ %s selesai!
📊 Hasil:
• Total %s: %d
• ✅ Sukses: %d
• ❌ Gagal: %d`, label, unit, total, succeeded, failed))
}

func UnsupportedShare() string {
	return "⚠️ Jenis pesan ini belum didukung untuk share otomatis."
}

func UnsupportedAutoShare() string {
	return "⚠️ Jenis pesan ini belum didukung autoshare."
}

func GrantDays(total, days int) string {
	return fmt.Sprintf("🎉 Kamu berhasil menambahkan bot ke %d grup (≥20 member).\n✅ Premium aktif %d hari!", total, days)
}

func GrantPermanent(total int) string {
	return fmt.Sprintf("🎉 Kamu berhasil menambahkan bot ke %d grup!\n✅ Premium aktif PERMANEN!", total)
}

func GroupTooSmall(title string, members, minimum int) string {
	return fmt.Sprintf("⚠️ Grup %s hanya punya %d member.\n❌ Minimal %d member.", title, members, minimum)
}

func PremiumRevoked() string {
	return "❌ Kamu menghapus bot dari grup.\n🔒 Premium otomatis dicabut."
}

func PremiumExpired() string {
	return "⚠️ Masa aktif Premium kamu sudah expired."
}

func GroupJoinReport(name, username, userID, title string, groupID int64, total, members int) string {
	return strings.TrimSpace(fmt.Sprintf(`
➕ Bot ditambahkan ke grup baru!

👤 User: <a href="tg://user?id=%s">%s</a>
🔗 Username: @%s
🆔 ID User: <code>%s</code>

👥 Grup: %s
🆔 ID Grup: <code>%d</code>

📊 Total Grup Ditambahkan: %d
👥 Member Grup: %d`, userID, Escape(name), Escape(orDash(username)), userID, Escape(title), groupID, total, members))
}

func GroupLeaveReport(name, username, userID, title string, groupID int64, total, members int) string {
	return strings.TrimSpace(fmt.Sprintf(`
⚠️ Bot dikeluarkan dari grup!

👤 User: <a href="tg://user?id=%s">%s</a>
🔗 Username: @%s
🆔 ID User: <code>%s</code>

👥 Grup: %s
🆔 ID Grup: <code>%d</code>

📊 Total Grup Saat Ini: %d
👥 Member Grup: %d`, userID, Escape(name), Escape(orDash(username)), userID, Escape(title), groupID, total, members))
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func OwnerAdded(id string) string {
	return fmt.Sprintf("✅ User %s berhasil ditambahkan sebagai owner tambahan.", id)
}

func OwnerAlready(id string) string {
	return fmt.Sprintf("⚠️ User %s sudah menjadi owner tambahan.", id)
}

func OwnerRemoved(id string) string {
	return fmt.Sprintf("✅ User %s berhasil dihapus dari owner tambahan.", id)
}

func OwnerNotFound(id string) string {
	return fmt.Sprintf("⚠️ User %s bukan owner tambahan.", id)
}

func CannotRemovePrimary(id string) string {
	return fmt.Sprintf("❌ Tidak bisa menghapus Owner Utama (%s).", id)
}

func OwnerList(ids []string) string {
	if len(ids) == 0 {
		return "📋 Tidak ada owner tambahan yang terdaftar."
	}
	lines := make([]string, 0, len(ids))
	for i, id := range ids {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, id))
	}
	return "📋 Daftar Owner Tambahan:\n\n" + strings.Join(lines, "\n")
}

func Usage(example string) string {
	return "📌 Contoh penggunaan:\n" + example
}

func PremiumGranted(id string, amount int, unit string) string {
	return fmt.Sprintf("✅ User %s berhasil ditambahkan Premium selama %d %s.", id, amount, unit)
}

func PremiumDeleted(id string) string {
	return fmt.Sprintf("✅ Premium user %s berhasil dihapus.", id)
}

func PremiumNotFound(id string) string {
	return fmt.Sprintf("❌ User %s tidak ditemukan atau belum premium.", id)
}

func PremiumList(lines []string) string {
	if len(lines) == 0 {
		return "📋 Daftar Premium:\n\nBelum ada user Premium."
	}
	return "📋 Daftar Premium:\n\n" + strings.Join(lines, "\n")
}

func PremiumListEntry(id string, hoursLeft int) string {
	return fmt.Sprintf("👤 %s - %d jam tersisa", id, hoursLeft)
}

func PremiumListPermanent(id string) string {
	return fmt.Sprintf("👤 %s - PERMANEN", id)
}

func BlacklistAdded(id string) string {
	return fmt.Sprintf("✅ User %s ditambahkan ke blacklist.", id)
}

func BlacklistAlready(id string) string {
	return fmt.Sprintf("⚠️ User %s sudah ada di blacklist.", id)
}

func BlacklistRemoved(id string) string {
	return fmt.Sprintf("✅ User %s dihapus dari blacklist.", id)
}

func BlacklistNotFound(id string) string {
	return fmt.Sprintf("⚠️ User %s tidak ada di blacklist.", id)
}

func BlacklistList(ids []string) string {
	if len(ids) == 0 {
		return "📋 Blacklist kosong."
	}
	return "📋 Daftar blacklist:\n" + strings.Join(ids, "\n")
}

func CooldownCurrent(minutes int) string {
	return fmt.Sprintf("⚙️ Cooldown saat ini: %d menit", minutes)
}

func CooldownUpdated(minutes int) string {
	return fmt.Sprintf("✅ Jeda berhasil diatur ke %d menit.", minutes)
}

func AutoSharePayloadSaved() string {
	return "✅ Pesan berhasil disimpan untuk auto-share (akan dikirim ulang oleh bot)."
}

func AutoShareNoPayload() string {
	return "⚠️ Belum ada pesan di-set. Gunakan /setpesan dengan reply pesan dulu."
}

func AutoShareStarted() string {
	return "🔄 Auto-share dimulai.\nMenunggu jeda pertama sebelum pesan dikirim..."
}

func AutoShareStopped() string {
	return "❌ Auto-share dimatikan."
}

func AutoShareStatus(active bool) string {
	status := "OFF ❌"
	if active {
		status = "ON ✅"
	}
	return fmt.Sprintf("📊 Status auto-share: %s", status)
}

func SessionOpened() string {
	return "🔔 Kamu sekarang terhubung dengan Admin.\nKetik pesanmu di sini.\n\nKetik ❌ BATALKAN untuk mengakhiri sesi."
}

func SessionClosed() string {
	return "❌ Sesi chat dengan Admin ditutup."
}

func SessionOpenedOwnerSide(userID, name string) string {
	return fmt.Sprintf(`👤 User <a href="tg://user?id=%s">%s</a> memulai sesi chat.`, userID, Escape(name))
}

func SessionClosedOwnerSide(userID, name string) string {
	return fmt.Sprintf(`🚪 User <a href="tg://user?id=%s">%s</a> menutup sesi chat.`, userID, Escape(name))
}

func SessionInboundAck() string {
	return "✅ Pesan berhasil terkirim ke Admin."
}

func SessionOutboundAck() string {
	return "✅ Pesan berhasil terkirim ke user."
}

func BackupMissing() string {
	return "⚠️ Tidak ada data untuk di-backup."
}

func BackupFailed() string {
	return "❌ Gagal membuat backup."
}

func ContactOwner(developer string) string {
	return fmt.Sprintf("💬 Contact Owner: %s", developer)
}

func JoinRequired() string {
	return "🚫 Kamu belum bergabung Join Channel Di Bawah Untuk Memakai Bot!"
}

func JoinThanks() string {
	return "✅ Makasih Kamu Sudah Join"
}

func JoinStillMissing() string {
	return "❌ Kamu Belum Join."
}

func CommandFailed(command string) string {
	return fmt.Sprintf("⚠️ Terjadi error saat memproses /%s.", command)
}

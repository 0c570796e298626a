package checkin

import (
	"fmt"
	"math/rand"

	"github.com/mariposahq/anchor/internal/models"
)

var selfCareTips = []string{
	"Take a short walk outside to get fresh air and sunlight.",
	"Practice deep breathing for 5 minutes.",
	"Stay hydrated - drink a glass of water now.",
	"Stretch your body gently for a few minutes.",
	"Listen to music that makes you feel good.",
	"Write down three things you're grateful for today.",
	"Connect with a friend or loved one, even just for a quick chat.",
	"Take a warm shower or bath.",
	"Eat a nutritious meal or snack.",
	"Spend some time in nature, even if just sitting by a window.",
	"Try a simple meditation or mindfulness exercise.",
	"Give yourself permission to take a short nap.",
}

// Selector maps a reminder window and sentiment trend to a concrete
// outbound message. It only phrases; whether anything is sent at all is the
// Evaluator's decision.
type Selector struct{}

func NewSelector() *Selector {
	return &Selector{}
}

func (selector *Selector) SelectMessage(user models.User, kind WindowKind, trend Trend) models.OutboundMessage {
	name := user.DisplayName()
	var message models.OutboundMessage

	switch kind {
	case WindowMorning:
		message = models.OutboundMessage{
			Body: fmt.Sprintf(
				"Hey %s! 💫 Just a gentle check-in - absolutely no pressure at all. "+
					"I'm still here whenever you feel ready to connect. "+
					"If you'd like, you could:", name),
			Buttons: []models.Button{
				{ID: "plan_day", Title: "Plan my day"},
				{ID: "quick_checkin", Title: "Quick hello"},
				{ID: "remind_later", Title: "Not just now"},
			},
		}
	case WindowMidday:
		message = models.OutboundMessage{
			Body: fmt.Sprintf(
				"Hi %s! 🌤️ The day still holds possibilities, and that's wonderful. "+
					"If it feels right for you, maybe you'd like to:", name),
			Buttons: []models.Button{
				{ID: "plan_afternoon", Title: "Plan afternoon"},
				{ID: "self_care", Title: "Self-care time"},
				{ID: "just_chat", Title: "Just chat"},
			},
		}
	case WindowEvening:
		message = models.OutboundMessage{
			Body: fmt.Sprintf(
				"Hey %s! ✨ How has your day unfolded? Remember, each day is its own journey, "+
					"and tomorrow offers a fresh beginning whenever you need it.\n\n"+
					"Here's a gentle self-care reminder if it feels helpful: %s\n\n"+
					"If you'd like, you could:", name, selector.SelfCareTip()),
			Buttons: []models.Button{
				{ID: "share_day", Title: "Share about today"},
				{ID: "plan_tomorrow", Title: "Gentle tomorrow plan"},
				{ID: "rest_now", Title: "Rest & recharge"},
			},
		}
	case WindowNextDay:
		message = models.OutboundMessage{
			Body: fmt.Sprintf(
				"Hi %s 💖, I've noticed we haven't connected in a little while, and that's completely okay! "+
					"Sometimes we need space or things get busy, and I'm here with warmth whenever you're ready. "+
					"No rush at all. If you'd like to reconnect, maybe you'd enjoy:", name),
			Buttons: []models.Button{
				{ID: "fresh_start", Title: "Fresh beginning"},
				{ID: "gentle_checkin", Title: "Just say hi"},
				{ID: "need_help", Title: "Gentle support"},
			},
		}
	}

	if trend.Label == TrendDeclining || trend.Label == TrendNegative {
		message.Body += "\n\nWhatever the last days have felt like, be gentle with yourself - small steps still count. 💜"
	}
	return message
}

func (selector *Selector) SelfCareTip() string {
	return selfCareTips[rand.Intn(len(selfCareTips))]
}

// DailyCheckinMessage is the scheduled morning prompt that anchors the
// reminder windows for the rest of the day.
func (selector *Selector) DailyCheckinMessage(user models.User) string {
	return fmt.Sprintf(
		"Good morning %s 💫 I hope you've been able to rest. How are you feeling today? "+
			"Whatever you're experiencing is completely valid.", user.DisplayName())
}

func (selector *Selector) WeeklyCheckinMessage(user models.User) string {
	return fmt.Sprintf(
		"Hi %s 🌷 A new week is beginning. When you're ready, I'd love to hear what you'd "+
			"like this week to hold - one gentle intention is more than enough.", user.DisplayName())
}

// EndOfDayMessage reflects on the day using the number of responses the
// user sent today and the current sentiment trend.
func (selector *Selector) EndOfDayMessage(user models.User, responsesToday int, trend Trend) string {
	body := fmt.Sprintf("Hi %s! 🌙 As we wrap up the day, let's take a gentle moment to reflect.\n\n", user.DisplayName())
	if responsesToday > 0 {
		body += "Thank you for checking in with me today - staying connected is something to be proud of.\n\n"
	} else {
		body += "We haven't talked today, and that's completely okay. Tomorrow is a fresh start.\n\n"
	}
	if trend.Label == TrendImproving || trend.Label == TrendPositive {
		body += "It sounds like things have been feeling a little lighter lately. 💛\n\n"
	}
	body += fmt.Sprintf("Here's a gentle self-care reminder if it feels helpful: %s\n\nHow are you feeling as the day winds down?", selector.SelfCareTip())
	return body
}

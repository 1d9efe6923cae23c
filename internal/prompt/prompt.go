// Package prompt serves writing prompts and quotes for the entry form.
package prompt

import (
	"math/rand"
	"time"
)

// Quote is an inspirational quote with attribution.
type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

var prompts = []string{
	"What made you smile today?",
	"Describe a challenge you're currently facing and how you plan to overcome it.",
	"What are three things you're grateful for today?",
	"If you could change one thing about your day, what would it be?",
	"What's something new you learned recently?",
	"Describe your ideal day from start to finish.",
	"What's a goal you're working towards? What steps are you taking to achieve it?",
	"Write about a person who has positively influenced your life.",
	"What's something you're looking forward to in the coming weeks?",
	"Reflect on a mistake you made and what you learned from it.",
	"What's a habit you'd like to develop or break?",
	"Describe a place where you feel most at peace.",
	"What's something you're proud of accomplishing?",
	"Write about a book, movie, or song that recently impacted you.",
	"What does success mean to you?",
	"Describe a memory that always makes you happy.",
	"What are your top priorities right now?",
	"If you could give advice to your younger self, what would it be?",
	"What's something you want to explore or learn more about?",
	"How have you changed in the past year?",
	"What are you feeling anxious about, and how can you address it?",
	"Write about a small joy you experienced today.",
	"What boundaries do you need to set or maintain in your life?",
	"Describe a recent dream you had and what it might mean.",
	"What's something you're looking forward to tomorrow?",
}

var quotes = []Quote{
	{"The only way to do great work is to love what you do.", "Steve Jobs"},
	{"Write it on your heart that every day is the best day in the year.", "Ralph Waldo Emerson"},
	{"You don't have to be great to start, but you have to start to be great.", "Zig Ziglar"},
	{"The secret of getting ahead is getting started.", "Mark Twain"},
	{"The journey of a thousand miles begins with one step.", "Lao Tzu"},
	{"Happiness is not something ready-made. It comes from your own actions.", "Dalai Lama"},
	{"The best time to plant a tree was 20 years ago. The second best time is now.", "Chinese Proverb"},
	{"Your time is limited, don't waste it living someone else's life.", "Steve Jobs"},
	{"The future belongs to those who believe in the beauty of their dreams.", "Eleanor Roosevelt"},
	{"Life is what happens when you're busy making other plans.", "John Lennon"},
	{"The purpose of our lives is to be happy.", "Dalai Lama"},
	{"Get busy living or get busy dying.", "Stephen King"},
	{"You only live once, but if you do it right, once is enough.", "Mae West"},
	{"Many of life's failures are people who did not realize how close they were to success when they gave up.", "Thomas A. Edison"},
	{"The unexamined life is not worth living.", "Socrates"},
	{"Turn your wounds into wisdom.", "Oprah Winfrey"},
	{"The way to get started is to quit talking and begin doing.", "Walt Disney"},
	{"The greatest glory in living lies not in never falling, but in rising every time we fall.", "Nelson Mandela"},
	{"Life is really simple, but we insist on making it complicated.", "Confucius"},
	{"In the end, it's not the years in your life that count. It's the life in your years.", "Abraham Lincoln"},
}

// OfDay returns the prompt for the given date. The same date always
// yields the same prompt.
func OfDay(date time.Time) string {
	return prompts[date.YearDay()%len(prompts)]
}

// Random returns a randomly chosen prompt.
func Random() string {
	return prompts[rand.Intn(len(prompts))]
}

// RandomQuote returns a randomly chosen quote.
func RandomQuote() Quote {
	return quotes[rand.Intn(len(quotes))]
}
